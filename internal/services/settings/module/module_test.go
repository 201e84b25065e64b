package module

import (
	"context"
	"testing"

	"bankingops/internal/modkit"
	"bankingops/internal/modkit/module"
)

func TestFromConfigDefaults(t *testing.T) {
	if got := FromConfig(modkit.Deps{}.Cfg).SecretPrefix; got != "BANKINGOPS_SECRET_" {
		t.Fatalf("SecretPrefix = %q", got)
	}
}

func TestNewWithoutPG(t *testing.T) {
	t.Setenv("BANKINGOPS_SECRET_PP_FRAUDAPIKEY", "k")
	m := New(modkit.Deps{})
	p := module.MustPortsOf[Ports](m)
	if p.Writer != nil {
		t.Fatalf("writer should be nil without PG")
	}
	if got := p.Resolver.Resolve(context.Background(), "pp_FraudApiKey", ""); got != "k" {
		t.Fatalf("Resolve = %q, want secret value", got)
	}
}
