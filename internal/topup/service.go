package topup

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Options tunes how top-ups are ordered.
type Options struct {
	// Locale selects the collation used to order users by last name.
	Locale language.Tag
}

func (o Options) collator() *collate.Collator {
	return collate.New(o.Locale)
}

// Apply joins users to their companies and tops up every active user once per
// company block. The inputs are left untouched.
func Apply(users []User, companies []Company, opts Options) Result {
	known := make(map[int64]struct{}, len(companies))
	for _, company := range companies {
		known[company.ID] = struct{}{}
	}

	balances := make([]float64, len(users))
	active := make([]int, 0, len(users))
	for i, user := range users {
		balances[i] = user.Tokens
		if !user.ActiveStatus {
			continue
		}
		if _, ok := known[user.CompanyID]; ok {
			active = append(active, i)
		}
	}

	ordered := slices.Clone(companies)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})
	col := opts.collator()
	sort.SliceStable(active, func(i, j int) bool {
		return col.CompareString(users[active[i]].LastName, users[active[j]].LastName) < 0
	})

	blocks := make([]CompanyBlock, 0, len(ordered))
	for _, company := range ordered {
		block := CompanyBlock{
			CompanyID:   company.ID,
			CompanyName: company.Name,
			TopUp:       company.TopUp,
			Emailed:     make([]UserLine, 0),
			NotEmailed:  make([]UserLine, 0),
		}
		for _, idx := range active {
			user := users[idx]
			if user.CompanyID != company.ID {
				continue
			}
			// Duplicate company entries top up again from the running balance.
			line := UserLine{
				UserID:          user.ID,
				FirstName:       user.FirstName,
				LastName:        user.LastName,
				Email:           user.Email,
				PreviousBalance: balances[idx],
				NewBalance:      balances[idx] + company.TopUp,
			}
			balances[idx] = line.NewBalance
			if user.EmailStatus {
				block.Emailed = append(block.Emailed, line)
			} else {
				block.NotEmailed = append(block.NotEmailed, line)
			}
		}
		block.TotalTopUp = float64(block.UserCount()) * company.TopUp
		blocks = append(blocks, block)
	}

	updated := slices.Clone(users)
	for i := range updated {
		updated[i].Tokens = balances[i]
	}
	return Result{Blocks: blocks, Users: updated}
}

// Paths locates the inputs and the report destination for a run.
type Paths struct {
	Users     string
	Companies string
	Output    string
}

// Generator runs the read, apply, render and write pipeline.
type Generator struct {
	logger *slog.Logger
	opts   Options
}

// NewGenerator constructs a Generator. A nil logger discards output.
func NewGenerator(logger *slog.Logger, opts Options) *Generator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{logger: logger, opts: opts}
}

// Run loads both datasets, writes the report to paths.Output and returns the
// structured result. Errors produced by the pipeline are *Error values.
func (g *Generator) Run(ctx context.Context, paths Paths) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	users, err := LoadUsers(paths.Users)
	if err != nil {
		return Result{}, err
	}
	companies, err := LoadCompanies(paths.Companies)
	if err != nil {
		return Result{}, err
	}
	g.logger.Debug("datasets loaded", slog.Int("users", len(users)), slog.Int("companies", len(companies)))

	result := Apply(users, companies, g.opts)
	g.logger.Debug("top-ups applied", slog.Int("qualifying_users", result.QualifyingUsers()), slog.Int("blocks", len(result.Blocks)))

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(paths.Output, []byte(Render(result.Blocks)), 0o644); err != nil {
		return Result{}, &Error{Kind: KindFileWrite, Path: paths.Output, Err: err}
	}
	return result, nil
}
