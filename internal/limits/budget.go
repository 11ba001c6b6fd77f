package limits

import "fmt"

// Budget counts execution steps against a ceiling. A zero limit is unlimited.
type Budget struct {
	limit int64
	used  int64
}

func NewBudget(limit int64) *Budget {
	if limit < 0 {
		limit = 0
	}
	return &Budget{limit: limit}
}

func (b *Budget) Limit() int64 {
	if b == nil {
		return 0
	}
	return b.limit
}

func (b *Budget) Used() int64 {
	if b == nil {
		return 0
	}
	return b.used
}

func (b *Budget) Remaining() int64 {
	if b == nil || b.limit == 0 {
		return -1
	}
	return b.limit - b.used
}

func MaxStepsMessage(limit int64) string {
	return fmt.Sprintf("max step count exceeded (%d)", limit)
}

type MaxStepsError struct {
	Limit int64
}

func (e MaxStepsError) Error() string {
	return MaxStepsMessage(e.Limit)
}

// Charge records n steps. It fails without recording once the ceiling would be passed.
func (b *Budget) Charge(n int64) error {
	if n <= 0 || b == nil {
		return nil
	}
	if b.limit != 0 && b.used+n > b.limit {
		return MaxStepsError{Limit: b.limit}
	}
	b.used += n
	return nil
}

func (b *Budget) Reset() {
	if b != nil {
		b.used = 0
	}
}
