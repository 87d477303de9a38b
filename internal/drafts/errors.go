package drafts

import (
	foundationerrors "git.home.luguber.info/inful/mdport/internal/foundation/errors"
)

var (
	// ErrDraftNotFound indicates no draft exists under the requested name.
	ErrDraftNotFound = foundationerrors.NotFoundError("draft not found").Build()

	// ErrInvalidName indicates an empty or whitespace-only draft name.
	ErrInvalidName = foundationerrors.ValidationError("draft name must not be empty").Build()

	// ErrDatabaseOpenFailed indicates the SQLite database could not be opened.
	ErrDatabaseOpenFailed = foundationerrors.StorageError("could not open draft database").Build()

	// ErrInitializeSchemaFailed indicates the database schema could not be initialized.
	ErrInitializeSchemaFailed = foundationerrors.StorageError("failed to initialize draft schema").Build()

	// ErrWriteFailed indicates saving or deleting a draft failed.
	ErrWriteFailed = foundationerrors.StorageError("failed to write draft").Build()

	// ErrQueryFailed indicates reading drafts failed.
	ErrQueryFailed = foundationerrors.StorageError("failed to query drafts").Build()
)

func notFound(name string) error {
	return ErrDraftNotFound.WithContext("draft", name)
}
