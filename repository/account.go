package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/CeKulit/cekulit-backend/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type accountMongoRepository struct {
	collection *mongo.Collection
}

func NewAccountRepository(collection *mongo.Collection) domain.AccountRepository {
	return &accountMongoRepository{collection: collection}
}

func (r *accountMongoRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	err := r.collection.FindOne(ctx, bson.M{"_id": email}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to read account: %w", err)
	}
	return &account, nil
}

// Create inserts the document with the email as its key. The insert is the
// existence check: a duplicate key means someone else registered first.
func (r *accountMongoRepository) Create(ctx context.Context, account *domain.Account) error {
	if _, err := r.collection.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountMongoRepository) UpdateFields(ctx context.Context, email string, fields map[string]interface{}) error {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": email}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
