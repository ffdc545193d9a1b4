package employee

// Employee は社員エンティティです。
type Employee struct {
	ID         string
	FirstName  string
	LastName   string
	Position   string
	Department string
	// DirectReports は直属の部下の ID を表示順に保持します。部下レコードの所有を意味しません。
	DirectReports []string
}

// Draft は新規作成および置き換え時に呼び出し元から渡される社員の内容です。ID は含みません。
type Draft struct {
	FirstName     string
	LastName      string
	Position      string
	Department    string
	DirectReports []string
}
