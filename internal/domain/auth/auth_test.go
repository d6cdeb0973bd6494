package auth

import "testing"

func TestLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     LoginRequest
		wantErr string
	}{
		{name: "valid", req: LoginRequest{Tenant: "acme", Email: "a@b.com", Password: "secret"}},
		{name: "missing tenant", req: LoginRequest{Tenant: "  ", Email: "a@b.com", Password: "secret"}, wantErr: "Company short name is required"},
		{name: "missing email", req: LoginRequest{Tenant: "acme", Password: "secret"}, wantErr: "email is required"},
		{name: "invalid email", req: LoginRequest{Tenant: "acme", Email: "bad", Password: "secret"}, wantErr: "invalid email format"},
		{name: "missing password", req: LoginRequest{Tenant: "acme", Email: "a@b.com"}, wantErr: "password is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %q, got nil", tt.wantErr)
			}
			if got := err.Error(); got != tt.wantErr {
				t.Fatalf("error = %q, want %q", got, tt.wantErr)
			}
		})
	}
}
