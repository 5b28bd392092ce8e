package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kudos/api/internal/ids"
	"kudos/api/internal/models"
)

type KudoRepository struct {
	pool *pgxpool.Pool
}

func NewKudoRepository(pool *pgxpool.Pool) *KudoRepository {
	return &KudoRepository{pool: pool}
}

// Create inserts one kudo linking author, recipient and style. The style
// row is shared: the (background, text, emoji) triple is created once
// and reused by every kudo with the same look.
func (r *KudoRepository) Create(ctx context.Context, kudo models.Kudo) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const upsertStyle = `
		INSERT INTO kudo_styles (id, background_color, text_color, emoji)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (background_color, text_color, emoji)
		DO UPDATE SET emoji = EXCLUDED.emoji
		RETURNING id
	`
	var styleID string
	if err := tx.QueryRow(ctx, upsertStyle,
		ids.New(),
		kudo.Style.BackgroundColor,
		kudo.Style.TextColor,
		kudo.Style.Emoji,
	).Scan(&styleID); err != nil {
		return err
	}

	const insertKudo = `
		INSERT INTO kudos (id, message, author_id, recipient_id, style_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	if _, err := tx.Exec(ctx, insertKudo,
		kudo.ID,
		kudo.Message,
		kudo.AuthorID,
		kudo.RecipientID,
		styleID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const feedColumns = `
	k.id, k.message, k.author_id, k.recipient_id, k.created_at,
	s.id, s.background_color, s.text_color, s.emoji,
	p.first_name, p.last_name, p.department, p.profile_pic
`

const feedBase = `
	SELECT ` + feedColumns + `
	FROM kudos k
	JOIN kudo_styles s ON s.id = k.style_id
	JOIN profiles p ON p.user_id = k.author_id
	WHERE k.recipient_id = $1
`

// feedQuery appends the filter predicate and the order clause for a
// feed request. The filter text is always passed as a bind parameter.
func feedQuery(sort models.KudoSort, filter string) (string, []any) {
	query := feedBase
	args := []any{}

	if filter != "" {
		query += `
	AND (k.message ILIKE '%' || $2 || '%'
		OR p.first_name ILIKE '%' || $2 || '%'
		OR p.last_name ILIKE '%' || $2 || '%')
`
		args = append(args, filter)
	}

	switch sort {
	case models.KudoSortDate:
		query += "	ORDER BY k.created_at DESC\n"
	case models.KudoSortSender:
		query += "	ORDER BY p.first_name ASC\n"
	case models.KudoSortEmoji:
		query += "	ORDER BY s.emoji ASC\n"
	}

	return query, args
}

// ListReceived returns the kudos received by recipientID, each joined
// with its author's profile, ordered per sort and narrowed per filter.
func (r *KudoRepository) ListReceived(ctx context.Context, recipientID string, sort models.KudoSort, filter string) ([]models.KudoWithAuthor, error) {
	query, extra := feedQuery(sort, filter)
	args := append([]any{recipientID}, extra...)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var kudos []models.KudoWithAuthor
	for rows.Next() {
		kudo, err := scanFeedRow(rows)
		if err != nil {
			return nil, err
		}
		kudos = append(kudos, kudo)
	}
	return kudos, rows.Err()
}

func scanFeedRow(row pgx.Row) (models.KudoWithAuthor, error) {
	var kudo models.KudoWithAuthor
	if err := row.Scan(
		&kudo.ID,
		&kudo.Message,
		&kudo.AuthorID,
		&kudo.RecipientID,
		&kudo.CreatedAt,
		&kudo.Style.ID,
		&kudo.Style.BackgroundColor,
		&kudo.Style.TextColor,
		&kudo.Style.Emoji,
		&kudo.AuthorProfile.FirstName,
		&kudo.AuthorProfile.LastName,
		&kudo.AuthorProfile.Department,
		&kudo.AuthorProfile.ProfilePic,
	); err != nil {
		return models.KudoWithAuthor{}, err
	}
	return kudo, nil
}

// Recent returns the 3 newest kudos system-wide with recipient profile
// and style emoji, for the recent-activity rail.
func (r *KudoRepository) Recent(ctx context.Context) ([]models.RecentKudo, error) {
	const query = `
		SELECT k.id, s.emoji, k.recipient_id,
		       p.first_name, p.last_name, p.department, p.profile_pic
		FROM kudos k
		JOIN kudo_styles s ON s.id = k.style_id
		JOIN profiles p ON p.user_id = k.recipient_id
		ORDER BY k.created_at DESC
		LIMIT 3
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recent []models.RecentKudo
	for rows.Next() {
		var kudo models.RecentKudo
		if err := rows.Scan(
			&kudo.ID,
			&kudo.Emoji,
			&kudo.RecipientID,
			&kudo.RecipientProfile.FirstName,
			&kudo.RecipientProfile.LastName,
			&kudo.RecipientProfile.Department,
			&kudo.RecipientProfile.ProfilePic,
		); err != nil {
			return nil, err
		}
		recent = append(recent, kudo)
	}
	return recent, rows.Err()
}
