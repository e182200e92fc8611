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

const bidColumns = "bid.id, bid.gig_id, bid.freelancer_id, bid.message, bid.price, bid.status, bid.created_at, bid.updated_at"

type BidRepo struct {
	*postgres.Postgres
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{pgdb}
}

func scanBid(row rowScanner) (entity.Bid, error) {
	var bid entity.Bid
	err := row.Scan(&bid.Id, &bid.GigId, &bid.FreelancerId, &bid.Message, &bid.Price,
		&bid.Status, &bid.CreatedAt, &bid.UpdatedAt)

	return bid, err
}

func (r *BidRepo) queryBids(ctx context.Context, b squirrel.SelectBuilder) ([]entity.Bid, error) {
	sqlReq, args, _ := b.ToSql()

	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query bids")
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return bids, errors.Wrap(err, "failed to scan bid")
		}
		bids = append(bids, bid)
	}
	if err = rows.Err(); err != nil {
		return bids, errors.Wrap(err, "failed to read bids")
	}

	return bids, nil
}

// CreateBid relies on the bid_gig_freelancer_key unique index, so two
// concurrent submissions from the same freelancer cannot both land. The gig
// row is share-locked for the insert, so AssignGig either commits before it
// (ErrStatusMismatch here) or waits and then rejects the new bid.
func (r *BidRepo) CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	lockGigSql, args, _ := r.SqlBuilder.
		Select("gig.status").
		From("gig").
		Where("gig.id = ?", input.GigId).
		Suffix("FOR SHARE").
		ToSql()

	var status string
	if err := tx.QueryRowContext(ctx, lockGigSql, args...).Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, repo_errors.ErrNotFound
		}

		return uuid.Nil, errors.Wrap(err, "failed to lock gig")
	}
	if status != common.GigOpen {
		return uuid.Nil, repo_errors.ErrStatusMismatch
	}

	createBidSql, args, _ := r.SqlBuilder.
		Insert("bid").
		Columns("gig_id", "freelancer_id", "message", "price", "status").
		Values(input.GigId, input.FreelancerId, input.Message, input.Price, common.BidPending).
		Suffix("RETURNING id").
		ToSql()

	var bidId uuid.UUID
	err = tx.QueryRowContext(ctx, createBidSql, args...).Scan(&bidId)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, repo_errors.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return uuid.Nil, repo_errors.ErrNotFound
		}

		return uuid.Nil, errors.Wrap(err, "failed to insert bid")
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to commit bid")
	}

	return bidId, nil
}

func (r *BidRepo) GetBidById(ctx context.Context, id uuid.UUID) (*entity.Bid, error) {
	getBidSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		Where("bid.id = ?", id).
		ToSql()

	bid, err := scanBid(r.Database.QueryRowContext(ctx, getBidSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to load bid")
	}

	return &bid, nil
}

func (r *BidRepo) GetGigBids(ctx context.Context, gigId uuid.UUID, pg *entity.PaginationInput) ([]entity.Bid, error) {
	builder := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		Where("bid.gig_id = ?", gigId).
		OrderBy("bid.created_at DESC")

	return r.queryBids(ctx, paginate(builder, pg))
}

func (r *BidRepo) GetFreelancerBids(ctx context.Context, freelancerId uuid.UUID, pg *entity.PaginationInput) ([]entity.Bid, error) {
	builder := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		Where("bid.freelancer_id = ?", freelancerId).
		OrderBy("bid.created_at DESC")

	return r.queryBids(ctx, paginate(builder, pg))
}

// EditPendingBidById refuses once the gig was assigned, even if the hired
// bid has not been marked yet.
func (r *BidRepo) EditPendingBidById(ctx context.Context, id uuid.UUID, input *entity.UpdateBidInput) error {
	builder := r.SqlBuilder.
		Update("bid").
		Set("updated_at", squirrel.Expr("now()")).
		Where("id = ?", id).
		Where("status = ?", common.BidPending).
		Where("gig_id IN (SELECT gig.id FROM gig WHERE gig.status = ? FOR SHARE)", common.GigOpen)

	if input.Message != "" {
		builder = builder.Set("message", input.Message)
	}
	if input.Price != nil {
		builder = builder.Set("price", *input.Price)
	}

	updateSql, args, _ := builder.ToSql()
	result, err := r.Database.ExecContext(ctx, updateSql, args...)
	if err != nil {
		return errors.Wrap(err, "failed to update bid")
	}

	return expectOneRow(result)
}

func (r *BidRepo) UpdateBidStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	updateStatusSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", to).
		Set("updated_at", squirrel.Expr("now()")).
		Where("id = ?", id).
		Where("status = ?", from).
		ToSql()

	result, err := r.Database.ExecContext(ctx, updateStatusSql, args...)
	if err != nil {
		return false, errors.Wrap(err, "failed to update bid status")
	}

	if err := expectOneRow(result); err == nil {
		return true, nil
	} else if !errors.Is(err, repo_errors.ErrStatusMismatch) {
		return false, err
	}

	bid, err := r.GetBidById(ctx, id)
	if err != nil {
		return false, err
	}
	if bid.Status == to {
		return false, nil
	}

	return false, repo_errors.ErrStatusMismatch
}

func (r *BidRepo) RejectPendingBids(ctx context.Context, gigId uuid.UUID, exceptBidId uuid.UUID) (int64, error) {
	rejectSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", common.BidRejected).
		Set("updated_at", squirrel.Expr("now()")).
		Where("gig_id = ?", gigId).
		Where("id <> ?", exceptBidId).
		Where("status = ?", common.BidPending).
		ToSql()

	result, err := r.Database.ExecContext(ctx, rejectSql, args...)
	if err != nil {
		return 0, errors.Wrap(err, "failed to reject pending bids")
	}

	rows, err := result.RowsAffected()
	return rows, errors.Wrap(err, "failed to read affected rows")
}

// DeletePendingBidById refuses once the bid was decided or its gig was assigned.
// The gig row is share-locked so a concurrent AssignGig waits for the delete.
func (r *BidRepo) DeletePendingBidById(ctx context.Context, id uuid.UUID) error {
	deleteSql, args, _ := r.SqlBuilder.
		Delete("bid").
		Where("id = ?", id).
		Where("status = ?", common.BidPending).
		Where("gig_id IN (SELECT gig.id FROM gig WHERE gig.status = ? FOR SHARE)", common.GigOpen).
		ToSql()

	result, err := r.Database.ExecContext(ctx, deleteSql, args...)
	if err != nil {
		return errors.Wrap(err, "failed to delete bid")
	}

	return expectOneRow(result)
}
