package repository

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/gokatarajesh/trivia-api/internal/domain"
)

var questionColumns = []string{"id", "question", "answer", "difficulty", "category"}

// QuestionRepository provides question persistence backed by PostgreSQL.
type QuestionRepository struct {
	db Querier
}

func NewQuestionRepository(db Querier) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// GetQuestion returns a question by id or domain.ErrNotFound.
func (r *QuestionRepository) GetQuestion(ctx context.Context, id int) (domain.Question, error) {
	if !serialID(id) {
		return domain.Question{}, mapError("get question", pgx.ErrNoRows)
	}
	query, args, err := psql.Select(questionColumns...).
		From("questions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Question{}, &domain.StoreError{Op: "build get question", Err: err}
	}

	var q domain.Question
	if err := pgxscan.Get(ctx, r.db, &q, query, args...); err != nil {
		return domain.Question{}, mapError("get question", err)
	}
	return q, nil
}

// ListQuestions returns one page of questions ordered by id plus the total count.
func (r *QuestionRepository) ListQuestions(ctx context.Context, offset, limit int) ([]domain.Question, int, error) {
	return r.page(ctx, "list questions", nil, offset, limit)
}

// ListQuestionsByCategory pages through one category. limit <= 0 returns every row.
func (r *QuestionRepository) ListQuestionsByCategory(ctx context.Context, categoryID, offset, limit int) ([]domain.Question, int, error) {
	if !serialID(categoryID) {
		return []domain.Question{}, 0, nil
	}
	return r.page(ctx, "list questions by category", sq.Eq{"category": categoryID}, offset, limit)
}

// SearchQuestions matches term case-insensitively anywhere in the question text.
// A blank term matches every question.
func (r *QuestionRepository) SearchQuestions(ctx context.Context, term string) ([]domain.Question, int, error) {
	var filter sq.Sqlizer
	if term = strings.TrimSpace(term); term != "" {
		filter = sq.ILike{"question": "%" + escapeLike(term) + "%"}
	}
	return r.page(ctx, "search questions", filter, 0, 0)
}

// CandidateIDs lists question ids in a category (0 = every category) that are not excluded.
func (r *QuestionRepository) CandidateIDs(ctx context.Context, categoryID int, exclude []int) ([]int, error) {
	sel := psql.Select("id").From("questions").OrderBy("id")
	if categoryID != 0 {
		sel = sel.Where(sq.Eq{"category": categoryID})
	}
	if len(exclude) > 0 {
		sel = sel.Where(sq.NotEq{"id": exclude})
	}

	query, args, err := sel.ToSql()
	if err != nil {
		return nil, &domain.StoreError{Op: "build candidate ids", Err: err}
	}

	ids := []int{}
	if err := pgxscan.Select(ctx, r.db, &ids, query, args...); err != nil {
		return nil, mapError("candidate ids", err)
	}
	return ids, nil
}

// CreateQuestion inserts a question and returns the stored row.
// An unknown category surfaces as domain.ErrNotFound through the foreign key.
func (r *QuestionRepository) CreateQuestion(ctx context.Context, in domain.NewQuestion) (domain.Question, error) {
	query, args, err := psql.Insert("questions").
		Columns("question", "answer", "difficulty", "category").
		Values(in.Question, in.Answer, in.Difficulty, in.Category).
		Suffix("RETURNING " + strings.Join(questionColumns, ", ")).
		ToSql()
	if err != nil {
		return domain.Question{}, &domain.StoreError{Op: "build create question", Err: err}
	}

	var q domain.Question
	if err := pgxscan.Get(ctx, r.db, &q, query, args...); err != nil {
		return domain.Question{}, mapError("create question", err)
	}
	return q, nil
}

// DeleteQuestion removes a question; domain.ErrNotFound when no row matched.
func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id int) error {
	if !serialID(id) {
		return mapError("delete question", pgx.ErrNoRows)
	}
	query, args, err := psql.Delete("questions").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return &domain.StoreError{Op: "build delete question", Err: err}
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return mapError("delete question", err)
	}
	if tag.RowsAffected() == 0 {
		return mapError("delete question", pgx.ErrNoRows)
	}
	return nil
}

func (r *QuestionRepository) page(ctx context.Context, op string, filter sq.Sqlizer, offset, limit int) ([]domain.Question, int, error) {
	sel := psql.Select(questionColumns...).From("questions").OrderBy("id")
	count := psql.Select("COUNT(*)").From("questions")
	if filter != nil {
		sel = sel.Where(filter)
		count = count.Where(filter)
	}
	if offset > 0 {
		sel = sel.Offset(uint64(offset))
	}
	if limit > 0 {
		sel = sel.Limit(uint64(limit))
	}

	selSQL, selArgs, err := sel.ToSql()
	if err != nil {
		return nil, 0, &domain.StoreError{Op: "build " + op, Err: err}
	}
	countSQL, countArgs, err := count.ToSql()
	if err != nil {
		return nil, 0, &domain.StoreError{Op: "build " + op, Err: err}
	}

	questions := []domain.Question{}
	var total int64
	err = inTx(ctx, r.db, readSnapshot, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return err
		}
		return pgxscan.Select(ctx, tx, &questions, selSQL, selArgs...)
	})
	if err != nil {
		return nil, 0, mapError(op, err)
	}
	return questions, int(total), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
