package employee

// Employee は社員エンティティです。
type Employee struct {
	ID    string
	Name  string
	Phone string
}
