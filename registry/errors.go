// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registry

import (
	"github.com/pkg/errors"
)

// Every failure of a registry operation aborts it with no partial effect. The sentinels below
// classify the abort reasons; batch registration additionally skips (instead of aborting on)
// the state-conflict pair ErrNameTaken/ErrAccountHasName.
var (
	// ErrInvalidSlug is returned for a malformed label or namespace
	ErrInvalidSlug = errors.New("invalid slug")
	// ErrForbiddenNamespace is returned when registering the forbidden namespace
	ErrForbiddenNamespace = errors.New("namespace is forbidden")
	// ErrInvalidPrice is returned for a non-positive price or one off the price step grid
	ErrInvalidPrice = errors.New("invalid price per name")
	// ErrNilRecipient is returned when an operation names the null account
	ErrNilRecipient = errors.New("recipient is the null account")
	// ErrBatchShape is returned for an empty batch or mismatched request/signature arrays
	ErrBatchShape = errors.New("malformed batch")
	// ErrNamespaceMismatch is returned when a batch item strays from the batch namespace
	ErrNamespaceMismatch = errors.New("namespace differs from the batch namespace")

	// ErrNamespaceNotExist is returned when the target namespace has not been registered
	ErrNamespaceNotExist = errors.New("namespace does not exist")
	// ErrNamespaceExists is returned when the namespace has already been registered
	ErrNamespaceExists = errors.New("namespace already exists")
	// ErrPriceInUse is returned when the price per name is already taken by another namespace
	ErrPriceInUse = errors.New("price per name already in use")
	// ErrNameTaken is returned when the requested name is already owned
	ErrNameTaken = errors.New("name already taken")
	// ErrAccountHasName is returned when the recipient already owns a name
	ErrAccountHasName = errors.New("account already owns a name")
	// ErrNameNotExist is returned by resolution queries for unregistered names
	ErrNameNotExist = errors.New("name does not exist")

	// ErrInvalidSignature is returned when an authorization fails verification
	ErrInvalidSignature = errors.New("invalid authorization signature")

	// ErrInsufficientFunds is returned when the attached value cannot cover the required amount
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrNoClaimableFees is returned when claiming an empty fee balance
	ErrNoClaimableFees = errors.New("no claimable fees")

	// ErrUnauthorized is returned when the caller is not permitted by the visibility,
	// exclusivity or privileged-window policy
	ErrUnauthorized = errors.New("caller is not authorized")
)
