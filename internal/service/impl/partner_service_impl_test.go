package impl

import (
	"context"
	"errors"
	"testing"

	"loyalty/internal/domain"
	"loyalty/internal/dto"
	"loyalty/internal/store"
)

func newPartner(t *testing.T) (*PartnerServiceImpl, *store.Store) {
	t.Helper()
	st := setupStore(t)
	return NewPartnerService(st, NewPasswordServiceArgon2id()), st
}

func TestRegisterBusinessSuccess(t *testing.T) {
	svc, st := newPartner(t)

	created, err := svc.RegisterBusiness(context.Background(), dto.RegisterBusinessRequest{
		Name:     "Acme",
		Email:    "A@B.com",
		Password: "longenough1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if created.Email == nil || *created.Email != "a@b.com" {
		t.Fatalf("expected lower-cased email, got %v", created.Email)
	}
	if !created.IsActive {
		t.Fatalf("expected new business active")
	}
	if created.EmailVerified {
		t.Fatalf("expected email unverified at creation")
	}

	row, err := st.Businesses().GetByEmail(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if row.PasswordHash == nil || *row.PasswordHash == "longenough1" {
		t.Fatalf("stored hash must never equal the plaintext password")
	}
	if !NewPasswordServiceArgon2id().Verify("longenough1", *row.PasswordHash) {
		t.Fatalf("stored hash does not verify against the password")
	}
}

func TestRegisterBusinessMissingFields(t *testing.T) {
	svc, _ := newPartner(t)

	cases := []dto.RegisterBusinessRequest{
		{Email: "a@b.com", Password: "longenough1"},
		{Name: "Acme", Password: "longenough1"},
		{Name: "Acme", Email: "a@b.com"},
	}
	for i, r := range cases {
		if _, err := svc.RegisterBusiness(context.Background(), r); !errors.Is(err, domain.ErrMissingFields) {
			t.Fatalf("case %d: expected missing-fields, got %v", i, err)
		}
	}
}

func TestRegisterBusinessMalformedEmail(t *testing.T) {
	svc, _ := newPartner(t)

	for _, email := range []string{"nodomain", "a@b", "a b@c.com", "@c.com"} {
		_, err := svc.RegisterBusiness(context.Background(), dto.RegisterBusinessRequest{
			Name: "Acme", Email: email, Password: "longenough1",
		})
		if !errors.Is(err, domain.ErrInvalidEmail) {
			t.Fatalf("email %q: expected invalid-email, got %v", email, err)
		}
	}
}

func TestRegisterBusinessShortPassword(t *testing.T) {
	svc, _ := newPartner(t)

	_, err := svc.RegisterBusiness(context.Background(), dto.RegisterBusinessRequest{
		Name: "Acme", Email: "a@b.com", Password: "short",
	})
	if !errors.Is(err, domain.ErrPasswordTooShort) {
		t.Fatalf("expected short-password error, got %v", err)
	}
}

func TestRegisterBusinessDuplicateEmailAnyCasing(t *testing.T) {
	svc, _ := newPartner(t)

	if _, err := svc.RegisterBusiness(context.Background(), dto.RegisterBusinessRequest{
		Name: "First", Email: "a@b.com", Password: "longenough1",
	}); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.RegisterBusiness(context.Background(), dto.RegisterBusinessRequest{
		Name: "Second", Email: "A@B.COM", Password: "longenough2",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected duplicate rejection across casings, got %v", err)
	}
}

func TestCreateBusinessNameOnly(t *testing.T) {
	svc, _ := newPartner(t)

	created, err := svc.CreateBusiness(context.Background(), dto.RegisterBusinessRequest{Name: "Corner Café"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Email != nil {
		t.Fatalf("expected no email on bare record, got %v", *created.Email)
	}

	if _, err := svc.CreateBusiness(context.Background(), dto.RegisterBusinessRequest{}); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected missing-fields without a name, got %v", err)
	}
}

func TestUploadBenefitRejectsBadBusinessID(t *testing.T) {
	svc, st := newPartner(t)

	// Non-numeric input never sets the flexible field; the reject must
	// happen before any store write.
	_, err := svc.UploadBenefit(context.Background(), dto.UploadBenefitRequest{
		Name: "10% off",
	})
	if !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected missing-fields, got %v", err)
	}

	_, err = svc.UploadBenefit(context.Background(), dto.UploadBenefitRequest{
		IDBusinessDiscount: dto.FlexibleInt{Value: 3, Set: true},
	})
	if !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected missing-fields without a name, got %v", err)
	}

	n, err := st.Benefits().CountForBusiness(context.Background(), 3)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no rows written, found %d", n)
	}
}

func TestUploadBenefitDefaults(t *testing.T) {
	svc, st := newPartner(t)

	benefit, err := svc.UploadBenefit(context.Background(), dto.UploadBenefitRequest{
		Name:               "2x1 coffee",
		IDBusinessDiscount: dto.FlexibleInt{Value: 7, Set: true},
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if benefit.QOfCodes != 0 || benefit.Discount != 0 {
		t.Fatalf("expected zero defaults, got %+v", benefit)
	}
	if benefit.IDBusinessDiscount != 7 {
		t.Fatalf("expected business id 7, got %d", benefit.IDBusinessDiscount)
	}

	n, err := st.Benefits().CountForBusiness(context.Background(), 7)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected one stored row, found %d", n)
	}
}

func TestCheckEmail(t *testing.T) {
	svc, _ := newPartner(t)

	exists, err := svc.CheckEmail(context.Background(), "ghost@nowhere.com")
	if err != nil || exists {
		t.Fatalf("expected unknown email to not exist, got %v err %v", exists, err)
	}

	if _, err := svc.RegisterBusiness(context.Background(), dto.RegisterBusinessRequest{
		Name: "Acme", Email: "known@b.com", Password: "longenough1",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	exists, err = svc.CheckEmail(context.Background(), "KNOWN@B.COM")
	if err != nil || !exists {
		t.Fatalf("expected known email to exist regardless of casing, got %v err %v", exists, err)
	}
}

func TestListBusinesses(t *testing.T) {
	svc, _ := newPartner(t)

	for _, name := range []string{"Zeta", "Alpha"} {
		if _, err := svc.CreateBusiness(context.Background(), dto.RegisterBusinessRequest{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	list, err := svc.ListBusinesses(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Alpha" || list[1].Name != "Zeta" {
		t.Fatalf("expected name-ordered listing, got %+v", list)
	}
}
