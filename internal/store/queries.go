package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	findUserByEmail = `SELECT user_id, legal_name, email, password, valid
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, legal_name, email, password, valid
    FROM users
    WHERE user_id = $1;`

	setUserValid = `UPDATE users
    SET valid = TRUE
    WHERE user_id = $1;`

	upsertVerificationHash = `INSERT INTO verification_hashes (user_id, hash)
    VALUES ($1, $2)
    ON CONFLICT (user_id) DO UPDATE SET hash = EXCLUDED.hash, created_at = NOW();`

	getVerificationHash = `SELECT hash
    FROM verification_hashes
    WHERE user_id = $1;`

	deleteVerificationHash = `DELETE FROM verification_hashes
    WHERE user_id = $1;`

	createSession = `INSERT INTO user_sessions (session_id, user_id, fingerprint)
    VALUES ($1, $2, $3);`

	findSession = `SELECT session_id, user_id, fingerprint
    FROM user_sessions
    WHERE user_id = $1 AND fingerprint = $2;`

	findSessionByID = `SELECT session_id, user_id, fingerprint
    FROM user_sessions
    WHERE session_id = $1;`

	deleteSession = `DELETE FROM user_sessions
    WHERE user_id = $1 AND fingerprint = $2;`

	saveItem = `INSERT INTO items (user_id, item_id, access_token, active)
    VALUES ($1, $2, $3, $4);`

	getItems = `SELECT user_id, item_id, access_token, active
    FROM items
    WHERE user_id = $1 AND active = TRUE;`

	createBudget = `INSERT INTO budgets (budget_id, user_id, budget_data)
    VALUES ($1, $2, $3);`

	getBudget = `SELECT budget_id, user_id, budget_data
    FROM budgets
    WHERE user_id = $1 AND budget_id = $2;`

	updateBudget = `UPDATE budgets
    SET budget_data = $1, updated_at = NOW()
    WHERE user_id = $2 AND budget_id = $3;`

	getLearn = `SELECT learn_data
    FROM learn
    WHERE user_id = $1;`

	createLearn = `INSERT INTO learn (user_id, learn_data)
    VALUES ($1, $2);`

	updateLearn = `UPDATE learn
    SET learn_data = $1, updated_at = NOW()
    WHERE user_id = $2;`
)

// buildListBudgetsQuery assembles the budget listing query. The id filter is
// optional: a nil or empty budgetIDs returns every budget the user owns.
func buildListBudgetsQuery(userID int64, budgetIDs []string) (string, []any, error) {
	builder := sq.Select("budget_id", "user_id", "budget_data").
		From("budgets").
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(sq.Dollar)

	if len(budgetIDs) > 0 {
		builder = builder.Where(sq.Eq{"budget_id": budgetIDs})
	}

	return builder.OrderBy("budget_id").ToSql()
}
