package shift

import "context"

// Repository はシフト永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, shift *Shift) (*Shift, error)
	FindByID(ctx context.Context, id string) (*Shift, error)
	List(ctx context.Context) ([]*Shift, error)
}
