package infra

import (
	"errors"
	"log/slog"

	"garden-stock-api/internal/pkg/errs"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr defaults to KindDBFailure. Not-found errors are also marked with
// errs.ErrSnapshotNotFound so callers outside infra can test for them.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := KindDBFailure
	if len(kind) > 0 {
		k = kind[0]
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}
	repoErr := RepositoryError{Kind: k, msg: msg, err: err}

	switch k {
	case KindNotFound:
		return errs.Mark(repoErr, errs.ErrSnapshotNotFound)
	default:
		slog.Error("Repository error: "+msg, slog.String("kind", string(k)), slog.Any("error", err))
		return errs.Mark(repoErr, errs.ErrDatabaseOperationFailed)
	}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindNotFound      RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure     RepositoryErrorKind = "DB_FAILURE"
	KindCorruptRecord RepositoryErrorKind = "CORRUPT_RECORD"
)
