package employee

import "context"

// Repository は社員永続化の抽象です。
// Create は採番 (E001 形式) を実装側の方式で行い、ID を埋めた社員を返します。
type Repository interface {
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	Update(ctx context.Context, employee *Employee) (*Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	List(ctx context.Context) ([]*Employee, error)
}
