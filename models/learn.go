package models

// BudgetScores are the five learning modules of the budgeting track.
type BudgetScores struct {
	Intro       int `json:"intro"`
	Creating    int `json:"creating"`
	Controlling int `json:"controlling"`
	Adjusting   int `json:"adjusting"`
	Specialized int `json:"specialized"`
}

// FinAidScores are the five learning modules of the financial-aid track.
type FinAidScores struct {
	Intro    int `json:"intro"`
	Applying int `json:"applying"`
	Types    int `json:"types"`
	Loans    int `json:"loans"`
	Repaying int `json:"repaying"`
}

// LearnDocument is the plaintext shape of a user's learning progress:
// a fixed two-category, five-part score matrix with each score in [0,2].
// One document exists per user, created lazily with the zero template.
type LearnDocument struct {
	Budgets BudgetScores `json:"budgets"`
	FinAid  FinAidScores `json:"finAid"`
}

// NewLearnDocument returns the all-zero template provisioned on first
// access.
func NewLearnDocument() LearnDocument {
	return LearnDocument{}
}

// score returns a pointer to the score addressed by (category, part),
// or nil if the pair does not exist in the matrix.
func (d *LearnDocument) score(category, part string) *int {
	switch category {
	case "budgets":
		switch part {
		case "intro":
			return &d.Budgets.Intro
		case "creating":
			return &d.Budgets.Creating
		case "controlling":
			return &d.Budgets.Controlling
		case "adjusting":
			return &d.Budgets.Adjusting
		case "specialized":
			return &d.Budgets.Specialized
		}
	case "finAid":
		switch part {
		case "intro":
			return &d.FinAid.Intro
		case "applying":
			return &d.FinAid.Applying
		case "types":
			return &d.FinAid.Types
		case "loans":
			return &d.FinAid.Loans
		case "repaying":
			return &d.FinAid.Repaying
		}
	}
	return nil
}

// Apply records a new score for (category, part). The stored score only
// moves upward: a submission lower than the current value is a no-op.
// Returns false when the pair is not part of the matrix.
func (d *LearnDocument) Apply(category, part string, score int) bool {
	current := d.score(category, part)
	if current == nil {
		return false
	}
	if score > *current {
		*current = score
	}
	return true
}

// Score reads the stored score for (category, part). The second return
// value is false when the pair does not exist.
func (d *LearnDocument) Score(category, part string) (int, bool) {
	current := d.score(category, part)
	if current == nil {
		return 0, false
	}
	return *current, true
}
