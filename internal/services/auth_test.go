package services

import (
  "context"
  "testing"
  "time"
  "github.com/mlisboa17/leiabem-backend/internal/repos"
  "github.com/mlisboa17/leiabem-backend/internal/requestdata"
  "github.com/mlisboa17/leiabem-backend/internal/types"
)

func newTestAuth(t *testing.T) AuthService {
  t.Helper()
  db := newTestDB(t)
  log := newTestLogger()
  userRepo := repos.NewUserRepo(db, log)
  userTokenRepo := repos.NewUserTokenRepo(db, log)
  return NewAuthService(db, log, userRepo, userTokenRepo, "test-secret", time.Hour, 24*time.Hour)
}

func TestRegisterLoginRoundTrip(t *testing.T) {
  auth := newTestAuth(t)
  ctx := context.Background()

  user := &types.User{
    Email:     "Leitor@Example.com",
    Password:  "segredo123",
    FirstName: "  Paulo ",
    LastName:  "Coelho",
  }
  if err := auth.RegisterUser(ctx, user); err != nil {
    t.Fatalf("RegisterUser: %v", err)
  }
  if user.Password == "segredo123" {
    t.Fatal("password stored in plain text")
  }

  // Email lookup is case-insensitive through normalization.
  access, refresh, err := auth.LoginUser(ctx, "leitor@example.com", "segredo123")
  if err != nil {
    t.Fatalf("LoginUser: %v", err)
  }
  if access == "" || refresh == "" {
    t.Fatal("login returned empty tokens")
  }

  if _, _, err := auth.LoginUser(ctx, "leitor@example.com", "senha-errada"); err == nil {
    t.Fatal("wrong password accepted")
  }

  gotCtx, err := auth.SetContextFromToken(ctx, access)
  if err != nil {
    t.Fatalf("SetContextFromToken: %v", err)
  }
  rd := requestdata.GetRequestData(gotCtx)
  if rd == nil || rd.UserID != user.ID || rd.IsStaff {
    t.Fatalf("request data = %+v, want the registered non-staff user", rd)
  }
}

func TestRefreshRotatesTokens(t *testing.T) {
  auth := newTestAuth(t)
  ctx := context.Background()

  user := &types.User{
    Email:     "rotacao@example.com",
    Password:  "segredo123",
    FirstName: "Rosa",
    LastName:  "Lima",
  }
  if err := auth.RegisterUser(ctx, user); err != nil {
    t.Fatalf("RegisterUser: %v", err)
  }
  _, refresh, err := auth.LoginUser(ctx, "rotacao@example.com", "segredo123")
  if err != nil {
    t.Fatalf("LoginUser: %v", err)
  }

  access2, refresh2, err := auth.RefreshUser(ctx, refresh)
  if err != nil {
    t.Fatalf("RefreshUser: %v", err)
  }
  if access2 == "" || refresh2 == refresh {
    t.Fatal("refresh should issue a new token pair")
  }

  // The old refresh token is gone after rotation.
  if _, _, err := auth.RefreshUser(ctx, refresh); err == nil {
    t.Fatal("stale refresh token accepted")
  }

  if err := auth.LogoutUser(ctx, user.ID); err != nil {
    t.Fatalf("LogoutUser: %v", err)
  }
  if _, _, err := auth.RefreshUser(ctx, refresh2); err == nil {
    t.Fatal("refresh token survived logout")
  }
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
  auth := newTestAuth(t)
  if _, err := auth.SetContextFromToken(context.Background(), "not-a-jwt"); err == nil {
    t.Fatal("garbage token accepted")
  }
}
