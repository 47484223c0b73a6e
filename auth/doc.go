// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identifiers, password hashing, and session tokens.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

Claim IDs are 16 random bytes, so an agent cannot guess or enumerate
another user's claims. GenerateAddress produces wallet-style addresses
(0x + 40 hex characters) for accounts registered without a wallet.

# Passwords

Account passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, password)

CheckPassword returns ErrInvalidCredentials on mismatch, never the
underlying bcrypt error.

# Sessions

Sessions are HS256 JWTs carrying the principal address (subject) and role,
valid for 24 hours:

	token, expiresAt, err := auth.IssueSessionToken(address, role, secret, time.Now())
	session, err := auth.ParseSessionToken(token, secret)

ParseSessionToken folds every validation failure (expiry, bad signature,
malformed token) into ErrInvalidToken.
*/
package auth
