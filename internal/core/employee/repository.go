package employee

import "context"

// Repository は社員永続化の抽象です。
type Repository interface {
	// Create は ID 設定済みの社員と直属の部下の関連を登録します。
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	// Delete は社員と、その社員を上長とする部下の関連を削除します。
	// 他の社員の部下としての関連や給与履歴は削除しません。
	Delete(ctx context.Context, id string) error
	// FindByID は直属の部下の ID を含めて社員を取得します。
	FindByID(ctx context.Context, id string) (*Employee, error)
}
