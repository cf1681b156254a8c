package i18n

import "testing"

func TestGetCatalogFallback(t *testing.T) {
	base := GetCatalog("pt-BR")
	if base == nil {
		t.Fatal("expected base catalog")
	}
	if base.Locale() != BaseLocale {
		t.Fatalf("locale = %q, want %q", base.Locale(), BaseLocale)
	}
	if fallback := GetCatalog("missing-locale"); fallback != base {
		t.Fatal("expected fallback to pt-BR catalog")
	}
	if empty := GetCatalog(""); empty != base {
		t.Fatal("expected empty locale to resolve to pt-BR catalog")
	}
}

func TestGetCatalogNegotiates(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{locale: "en-US", want: "en-US"},
		{locale: "en", want: "en-US"},
		{locale: "en-GB", want: "en-US"},
		{locale: "pt", want: "pt-BR"},
		{locale: "pt-PT", want: "pt-BR"},
		{locale: "ja", want: "pt-BR"},
	}
	for _, tt := range tests {
		if got := GetCatalog(tt.locale).Locale(); got != tt.want {
			t.Fatalf("GetCatalog(%q) = %q, want %q", tt.locale, got, tt.want)
		}
	}
}

func TestMatchAcceptLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: "pt-BR"},
		{header: "en-US,en;q=0.9", want: "en-US"},
		{header: "pt-BR,pt;q=0.9,en;q=0.8", want: "pt-BR"},
		{header: "fr;q=0.9,en;q=0.5", want: "en-US"},
		{header: "!!!", want: "pt-BR"},
	}
	for _, tt := range tests {
		if got := MatchAcceptLanguage(tt.header); got != tt.want {
			t.Fatalf("MatchAcceptLanguage(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestSupportedLocalesCoverSameKeys(t *testing.T) {
	if got := SupportedLocales(); len(got) != 2 || got[0] != BaseLocale {
		t.Fatalf("SupportedLocales() = %v", got)
	}
	for key := range ptBRCatalog.messages {
		if !enUSCatalog.Has(key) {
			t.Fatalf("en-US catalog missing %q", key)
		}
	}
	for key := range enUSCatalog.messages {
		if !ptBRCatalog.Has(key) {
			t.Fatalf("pt-BR catalog missing %q", key)
		}
	}
}

func TestFormatRendersMetadata(t *testing.T) {
	got := GetCatalog("pt-BR").Format("INVALID_PARAMETER.range", map[string]string{
		"Field": "angle",
		"Min":   "0",
		"Max":   "90",
		"Value": "120",
	})
	want := "O parâmetro 'angle' deve estar entre 0 e 90 (recebido: 120)."
	if got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestFormatFallbacks(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "hello {{.Name}}",
	})

	if cat.Format("unknown", nil) != "unknown" {
		t.Fatal("expected code fallback when template missing")
	}
	if cat.Format("code", nil) != "hello <no value>" {
		t.Fatal("expected template to render missing metadata")
	}
}

func TestFormatTemplateErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "{{ if .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ if .Name }}" {
		t.Fatal("expected template fallback on parse error")
	}
}

func TestFormatTemplateExecutionErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "{{ call .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ call .Name }}" {
		t.Fatal("expected template fallback on execute error")
	}
}

func TestRegisterCatalog(t *testing.T) {
	custom := NewCatalog("custom", map[Code]string{"code": "ok"})
	RegisterCatalog("custom", custom)
	if got := GetCatalog("custom"); got != custom {
		t.Fatal("expected registered catalog")
	}
}
