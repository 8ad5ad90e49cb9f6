package programs

import "exprbench/vm"

// Memory layout used by InsertionSortAlternatingSum. The array occupies
// ISortArrBase..ISortArrBase+n-1; everything below it is scratch state. The
// gap between 0 and ISortArrBase exists so the inner loop's "j >= 0 and
// a[j] > key" condition can read a[j] at j == -1 without the index going
// negative — both operands of "and" are always evaluated, so that read
// happens even on the iteration where it is discarded.
const (
	ISortI = iota
	ISortJ
	ISortKey
	ISortSum
	ISortArrBase
)

// InsertionSortAlternatingSum sorts the n-element array at ISortArrBase in
// place with textbook insertion sort, then sums every other element of the
// sorted result starting from the first — a[0] + a[2] + a[4] + ... — the
// 0-indexed form of "the sum of elements at positions 1, 3, 5, ..." in a
// 1-indexed array. n must be at least 1; the caller is responsible for
// seeding the array via NewInsertionSortContext.
func InsertionSortAlternatingSum(n int) vm.Node {
	arr := func(index vm.Node) vm.Node { return GetAt(Add(Num(ISortArrBase), index)) }
	setArr := func(index, value vm.Node) vm.Node { return SetAt(Add(Num(ISortArrBase), index), value) }

	sort := Seq(
		Set(ISortI, Num(1)),
		While(
			Lt(Get(ISortI), Num(n)),
			Seq(
				Set(ISortKey, arr(Get(ISortI))),
				Set(ISortJ, Sub(Get(ISortI), Num(1))),
				While(
					And(Gte(Get(ISortJ), Num(0)), Gt(arr(Get(ISortJ)), Get(ISortKey))),
					Seq(
						setArr(Add(Get(ISortJ), Num(1)), arr(Get(ISortJ))),
						Set(ISortJ, Sub(Get(ISortJ), Num(1))),
					),
				),
				setArr(Add(Get(ISortJ), Num(1)), Get(ISortKey)),
				Set(ISortI, Add(Get(ISortI), Num(1))),
			),
		),
	)

	alternatingSum := Seq(
		Set(ISortSum, Num(0)),
		Set(ISortI, Num(0)),
		While(
			Lt(Get(ISortI), Num(n)),
			Seq(
				Set(ISortSum, Add(Get(ISortSum), arr(Get(ISortI)))),
				Set(ISortI, Add(Get(ISortI), Num(2))),
			),
		),
		Get(ISortSum),
	)

	return Seq(sort, alternatingSum)
}

// NewInsertionSortContext allocates a Context sized for an
// InsertionSortAlternatingSum(len(values)) program with the array preset to
// values.
func NewInsertionSortContext(values []float64) *vm.Context {
	ctx := vm.NewContext(ISortArrBase + len(values))
	for i, v := range values {
		ctx.Store(ISortArrBase+i, v)
	}
	return ctx
}
