package pgdb

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/common"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/repo/repo_errors"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/pkg/postgres"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const gigColumns = "gig.id, gig.title, gig.description, gig.budget, gig.owner_id, gig.status, gig.hired_bid_id, gig.created_at, gig.updated_at"

type GigRepo struct {
	*postgres.Postgres
}

func NewGigRepo(pgdb *postgres.Postgres) *GigRepo {
	return &GigRepo{pgdb}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGig(row rowScanner) (entity.Gig, error) {
	var gig entity.Gig
	err := row.Scan(&gig.Id, &gig.Title, &gig.Description, &gig.Budget, &gig.OwnerId,
		&gig.Status, &gig.HiredBidId, &gig.CreatedAt, &gig.UpdatedAt)

	return gig, err
}

func (r *GigRepo) queryGigs(ctx context.Context, b squirrel.SelectBuilder) ([]entity.Gig, error) {
	sqlReq, args, _ := b.ToSql()

	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query gigs")
	}
	defer rows.Close()

	gigs := make([]entity.Gig, 0)
	for rows.Next() {
		gig, err := scanGig(rows)
		if err != nil {
			return gigs, errors.Wrap(err, "failed to scan gig")
		}
		gigs = append(gigs, gig)
	}
	if err = rows.Err(); err != nil {
		return gigs, errors.Wrap(err, "failed to read gigs")
	}

	return gigs, nil
}

func (r *GigRepo) CreateGig(ctx context.Context, input *entity.CreateGigInput) (uuid.UUID, error) {
	createGigSql, args, _ := r.SqlBuilder.
		Insert("gig").
		Columns("title", "description", "budget", "owner_id", "status").
		Values(input.Title, input.Description, input.Budget, input.OwnerId, common.GigOpen).
		Suffix("RETURNING id").
		ToSql()

	var gigId uuid.UUID
	if err := r.Database.QueryRowContext(ctx, createGigSql, args...).Scan(&gigId); err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to insert gig")
	}

	return gigId, nil
}

func (r *GigRepo) GetGigById(ctx context.Context, id uuid.UUID) (*entity.Gig, error) {
	getGigSql, args, _ := r.SqlBuilder.
		Select(gigColumns).
		From("gig").
		Where("gig.id = ?", id).
		ToSql()

	gig, err := scanGig(r.Database.QueryRowContext(ctx, getGigSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to load gig")
	}

	return &gig, nil
}

func (r *GigRepo) GetOpenGigs(ctx context.Context, search *entity.GigSearch) ([]entity.Gig, error) {
	builder := r.SqlBuilder.
		Select(gigColumns).
		From("gig").
		Where("gig.status = ?", common.GigOpen)

	var pg *entity.PaginationInput
	if search != nil {
		if search.Text != "" {
			pattern := containsPattern(search.Text)
			builder = builder.Where(squirrel.Or{
				squirrel.ILike{"gig.title": pattern},
				squirrel.ILike{"gig.description": pattern},
			})
		}
		pg = search.PaginationInput
	}

	return r.queryGigs(ctx, paginate(builder.OrderBy("gig.created_at DESC"), pg))
}

func (r *GigRepo) GetGigsByOwnerId(ctx context.Context, ownerId uuid.UUID, pg *entity.PaginationInput) ([]entity.Gig, error) {
	builder := r.SqlBuilder.
		Select(gigColumns).
		From("gig").
		Where("gig.owner_id = ?", ownerId).
		OrderBy("gig.created_at DESC")

	return r.queryGigs(ctx, paginate(builder, pg))
}

func (r *GigRepo) GetGigsByIds(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.Gig, error) {
	result := make(map[uuid.UUID]entity.Gig, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	gigs, err := r.queryGigs(ctx, r.SqlBuilder.
		Select(gigColumns).
		From("gig").
		Where(squirrel.Eq{"gig.id": uuidStrings(ids)}))
	if err != nil {
		return nil, err
	}

	for _, gig := range gigs {
		result[gig.Id] = gig
	}

	return result, nil
}

func (r *GigRepo) EditOpenGigById(ctx context.Context, id uuid.UUID, input *entity.UpdateGigInput) error {
	builder := r.SqlBuilder.
		Update("gig").
		Set("updated_at", squirrel.Expr("now()")).
		Where("id = ?", id).
		Where("status = ?", common.GigOpen)

	if input.Title != "" {
		builder = builder.Set("title", input.Title)
	}
	if input.Description != "" {
		builder = builder.Set("description", input.Description)
	}
	if input.Budget > 0 {
		builder = builder.Set("budget", input.Budget)
	}

	updateSql, args, _ := builder.ToSql()
	result, err := r.Database.ExecContext(ctx, updateSql, args...)
	if err != nil {
		return errors.Wrap(err, "failed to update gig")
	}

	return expectOneRow(result)
}

func (r *GigRepo) AssignGig(ctx context.Context, gigId uuid.UUID, bidId uuid.UUID) error {
	assignSql, args, _ := r.SqlBuilder.
		Update("gig").
		Set("status", common.GigAssigned).
		Set("hired_bid_id", bidId).
		Set("updated_at", squirrel.Expr("now()")).
		Where("id = ?", gigId).
		Where("status = ?", common.GigOpen).
		Where("EXISTS (SELECT 1 FROM bid WHERE bid.id = ? AND bid.gig_id = gig.id AND bid.status = ?)", bidId, common.BidPending).
		ToSql()

	result, err := r.Database.ExecContext(ctx, assignSql, args...)
	if err != nil {
		return errors.Wrap(err, "failed to assign gig")
	}

	return expectOneRow(result)
}

func (r *GigRepo) DeleteOpenGigById(ctx context.Context, id uuid.UUID) error {
	// bids go with the gig through ON DELETE CASCADE
	deleteSql, args, _ := r.SqlBuilder.
		Delete("gig").
		Where("id = ?", id).
		Where("status = ?", common.GigOpen).
		ToSql()

	result, err := r.Database.ExecContext(ctx, deleteSql, args...)
	if err != nil {
		return errors.Wrap(err, "failed to delete gig")
	}

	return expectOneRow(result)
}

func (r *GigRepo) GetIncompleteHires(ctx context.Context) ([]entity.Gig, error) {
	builder := r.SqlBuilder.
		Select(gigColumns).
		From("gig").
		Where("gig.status = ?", common.GigAssigned).
		Where("(EXISTS (SELECT 1 FROM bid WHERE bid.gig_id = gig.id AND bid.status = ?) "+
			"OR NOT EXISTS (SELECT 1 FROM bid WHERE bid.id = gig.hired_bid_id AND bid.status = ?))",
			common.BidPending, common.BidHired).
		OrderBy("gig.updated_at ASC")

	return r.queryGigs(ctx, builder)
}

// expectOneRow turns a conditional write that matched nothing into ErrStatusMismatch.
func expectOneRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if rows == 0 {
		return repo_errors.ErrStatusMismatch
	}

	return nil
}
