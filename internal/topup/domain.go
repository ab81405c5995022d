package topup

// User is a token holder loaded from the users dataset.
type User struct {
	ID           int64   `json:"id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	EmailStatus  bool    `json:"email_status"`
	ActiveStatus bool    `json:"active_status"`
	CompanyID    int64   `json:"company_id"`
	Tokens       float64 `json:"tokens"`
}

// Company defines the top-up amount granted to each of its active users.
type Company struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	TopUp float64 `json:"top_up"`
}

// UserLine is a single user entry inside a company block.
type UserLine struct {
	UserID          int64
	FirstName       string
	LastName        string
	Email           string
	PreviousBalance float64
	NewBalance      float64
}

// CompanyBlock aggregates the top-ups applied for one company.
type CompanyBlock struct {
	CompanyID   int64
	CompanyName string
	TopUp       float64
	Emailed     []UserLine
	NotEmailed  []UserLine
	TotalTopUp  float64
}

// UserCount returns the number of users topped up in the block.
func (b CompanyBlock) UserCount() int {
	return len(b.Emailed) + len(b.NotEmailed)
}

// Result is the outcome of applying company top-ups to a user set.
type Result struct {
	Blocks []CompanyBlock
	// Users mirrors the input order with balances after every top-up.
	Users  []User
}

// QualifyingUsers counts the user lines across all blocks.
func (r Result) QualifyingUsers() int {
	total := 0
	for _, block := range r.Blocks {
		total += block.UserCount()
	}
	return total
}

// TokensGranted sums the top-up totals across all blocks.
func (r Result) TokensGranted() float64 {
	var total float64
	for _, block := range r.Blocks {
		total += block.TotalTopUp
	}
	return total
}
