package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
	"github.com/aussiebroadwan/hoops/internal/hoops/store"
	"github.com/aussiebroadwan/hoops/pkg/cryptox"
	"github.com/aussiebroadwan/hoops/pkg/idx"
	"github.com/aussiebroadwan/hoops/pkg/jwtx"
	"github.com/aussiebroadwan/hoops/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers an unknown email, an inactive account and
	// a wrong password. Callers cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidAccount  = errors.New("invalid account details")
)

type AccountService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
	Codec  *jwtx.Codec

	dummyOnce sync.Once
	dummyHash string
}

// LoginResult is a freshly minted session.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	ExpiresIn time.Duration
	Email     string
}

// Login checks email and password and mints a session token for the account.
func (s *AccountService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	l := slogx.FromContext(ctx)
	email = domain.NormalizeEmail(email)

	acc, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// Burn the same hashing time as a real account.
		s.Hasher.Verify(password, s.dummy())
		l.Info("login refused", slog.String("reason", "unknown_account"))
		return LoginResult{}, ErrInvalidCredentials
	case err != nil:
		return LoginResult{}, fmt.Errorf("service: lookup account: %w", err)
	}

	ok := s.Hasher.Verify(password, acc.PasswordHash)
	if !acc.IsActive {
		l.Info("login refused", slog.String("reason", "inactive"), slog.String("account_id", acc.ID))
		return LoginResult{}, ErrInvalidCredentials
	}
	if !ok {
		l.Info("login refused", slog.String("reason", "bad_password"), slog.String("account_id", acc.ID))
		return LoginResult{}, ErrInvalidCredentials
	}

	tok, exp, err := s.Codec.Issue(acc.Email, 0)
	if err != nil {
		return LoginResult{}, fmt.Errorf("service: issue session: %w", err)
	}

	l.Info("login succeeded", slog.String("account_id", acc.ID))
	return LoginResult{
		Token:     tok,
		ExpiresAt: exp,
		ExpiresIn: s.Codec.TTL(),
		Email:     acc.Email,
	}, nil
}

// dummy returns a hash no password matches, computed once with the live
// hasher settings.
func (s *AccountService) dummy() string {
	s.dummyOnce.Do(func() {
		pw, err := cryptox.GeneratePassword()
		if err == nil {
			s.dummyHash, _ = s.Hasher.Hash(pw)
		}
	})
	return s.dummyHash
}

// CreateAccount stores a new account with a hashed password.
func (s *AccountService) CreateAccount(ctx context.Context, email, password string, active bool) (domain.Account, error) {
	return s.createAccount(ctx, s.Store.Accounts(), email, password, active)
}

func (s *AccountService) createAccount(ctx context.Context, accounts store.Accounts, email, password string, active bool) (domain.Account, error) {
	email = domain.NormalizeEmail(email)
	if err := validateAccount(email, password); err != nil {
		return domain.Account{}, err
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("service: hash password: %w", err)
	}

	acc := domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		IsActive:     active,
	}
	if err := accounts.CreateAccount(ctx, acc); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, ErrAccountExists
		}
		return domain.Account{}, fmt.Errorf("service: create account: %w", err)
	}

	slogx.FromContext(ctx).Info("account created", slog.String("account_id", acc.ID), slog.Bool("active", active))
	return accounts.GetAccountByID(ctx, acc.ID)
}

// EnsureAccount creates an active account unless one with email already
// exists. The existing account is left untouched. Lookup and insert share a
// transaction.
func (s *AccountService) EnsureAccount(ctx context.Context, email, password string) (bool, error) {
	var created bool
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Accounts().GetAccountByEmail(ctx, domain.NormalizeEmail(email))
		switch {
		case err == nil:
			return nil
		case !errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("service: lookup account: %w", err)
		}

		if _, err := s.createAccount(ctx, tx.Accounts(), email, password, true); err != nil {
			return err
		}
		created = true
		return nil
	})
	if errors.Is(err, ErrAccountExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return created, nil
}

func (s *AccountService) SetActive(ctx context.Context, email string, active bool) error {
	acc, err := s.lookup(ctx, email)
	if err != nil {
		return err
	}
	if err := s.Store.Accounts().SetAccountActive(ctx, acc.ID, active); err != nil {
		return fmt.Errorf("service: set active: %w", err)
	}
	slogx.FromContext(ctx).Info("account updated", slog.String("account_id", acc.ID), slog.Bool("active", active))
	return nil
}

func (s *AccountService) ChangePassword(ctx context.Context, email, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password must not be empty", ErrInvalidAccount)
	}
	acc, err := s.lookup(ctx, email)
	if err != nil {
		return err
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("service: hash password: %w", err)
	}
	if err := s.Store.Accounts().UpdatePasswordHash(ctx, acc.ID, hash); err != nil {
		return fmt.Errorf("service: update password: %w", err)
	}
	slogx.FromContext(ctx).Info("password changed", slog.String("account_id", acc.ID))
	return nil
}

func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	return s.Store.Accounts().ListAccounts(ctx)
}

func (s *AccountService) lookup(ctx context.Context, email string) (domain.Account, error) {
	acc, err := s.Store.Accounts().GetAccountByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("service: lookup account: %w", err)
	}
	return acc, nil
}

func validateAccount(email, password string) error {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("%w: email must look like user@host", ErrInvalidAccount)
	}
	if password == "" {
		return fmt.Errorf("%w: password must not be empty", ErrInvalidAccount)
	}
	return nil
}
