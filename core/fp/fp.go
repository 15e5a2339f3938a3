/*
Package fp provides small generic sequence helpers — Map, Filter and
Reduce — over Go slices. It plays the role the teacher's terex/fp package
plays for TeREx lists (a ListSeq generator with Map/List methods), adapted
to lispkit's needs: lispkit's lambdas can fail mid-application (a type
error, an unresolved symbol), so every callback here returns an error
alongside its value and the walk stops at the first one.

The package is deliberately independent of package core: it knows nothing
about Value, Pair or Environment, so core can import it without creating a
cycle back from fp to core.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021-present the lispkit authors
*/
package fp

// Map applies f to every element of list, in order, stopping at the first
// error.
func Map[T, U any](list []T, f func(T) (U, error)) ([]U, error) {
	out := make([]U, 0, len(list))
	for _, v := range list {
		u, err := f(v)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// Filter keeps the elements of list for which f reports true, in order,
// stopping at the first error.
func Filter[T any](list []T, f func(T) (bool, error)) ([]T, error) {
	out := make([]T, 0, len(list))
	for _, v := range list {
		keep, err := f(v)
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, v)
		}
	}
	return out, nil
}

// Reduce folds list left-to-right into an accumulator seeded by init,
// stopping at the first error.
func Reduce[T, A any](list []T, init A, f func(A, T) (A, error)) (A, error) {
	acc := init
	for _, v := range list {
		next, err := f(acc, v)
		if err != nil {
			return acc, err
		}
		acc = next
	}
	return acc, nil
}
