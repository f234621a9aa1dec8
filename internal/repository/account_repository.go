// internal/repository/account_repository.go
package repository

import (
	"context"
	"errors"
	"strings"

	"assistant-backend/internal/models"
	apperrors "assistant-backend/pkg/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type accountRepository struct {
	collection *mongo.Collection
}

func NewAccountRepository(collection *mongo.Collection) AccountRepository {
	return &accountRepository{
		collection: collection,
	}
}

func (r *accountRepository) Create(ctx context.Context, acct *models.Account) error {
	acct.ID = primitive.NewObjectID()
	acct.Revision = 1

	_, err := r.collection.InsertOne(ctx, acct)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewAccountExistsError()
		}
		return err
	}
	return nil
}

func (r *accountRepository) GetByUserID(ctx context.Context, userID string) (*models.Account, error) {
	var acct models.Account
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&acct)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewAccountNotFoundError()
		}
		return nil, err
	}
	return &acct, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var acct models.Account
	err := r.collection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&acct)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewAccountNotFoundError()
		}
		return nil, err
	}
	return &acct, nil
}

// Update replaces the whole account document, guarded by the revision the
// snapshot was loaded at. The document is the unit of consistency: analytics
// and dailyUsage land together or not at all.
func (r *accountRepository) Update(ctx context.Context, acct *models.Account) error {
	filter := bson.M{"userId": acct.UserID, "revision": acct.Revision}

	next := acct.Clone()
	next.Revision = acct.Revision + 1

	result, err := r.collection.ReplaceOne(ctx, filter, next)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Either the document is gone or another writer advanced the
		// revision; tell them apart for the caller.
		probe := r.collection.FindOne(ctx, bson.M{"userId": acct.UserID})
		if errors.Is(probe.Err(), mongo.ErrNoDocuments) {
			return apperrors.NewAccountNotFoundError()
		}
		return apperrors.NewConflictError()
	}

	acct.Revision = next.Revision
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.NewAccountNotFoundError()
	}
	return nil
}

func (r *accountRepository) GetAll(ctx context.Context) ([]models.Account, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var accounts []models.Account
	if err = cursor.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) GetTotalCount(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
