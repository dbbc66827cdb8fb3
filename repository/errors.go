package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"

	"abinterior/models"

	"go.mongodb.org/mongo-driver/mongo"
)

func mongoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrUnavailable):
		return err
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.ErrNotFound
	case mongo.IsNetworkError(err), mongo.IsTimeout(err):
		return fmt.Errorf("%w: %v", models.ErrUnavailable, err)
	}
	return err
}

func sqlErr(err error) error {
	var netErr net.Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrUnavailable):
		return err
	case errors.Is(err, sql.ErrNoRows):
		return models.ErrNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr):
		return fmt.Errorf("%w: %v", models.ErrUnavailable, err)
	}
	return err
}
