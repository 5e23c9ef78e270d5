package mongodb

import (
	"errors"

	"github.com/ArowuTest/bridgetunes-raffle/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// notFound maps mongo.ErrNoDocuments to repositories.ErrNotFound so the
// service layer never has to import the driver.
func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repositories.ErrNotFound
	}
	return err
}
