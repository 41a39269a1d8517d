package banners

import (
	"net/http/httptest"
	"testing"

	"github.com/asman-store/backend/internal/models"
)

type fakeAssets struct{ bucket string }

func (f fakeAssets) BannersBucket() string { return f.bucket }

func (f fakeAssets) PublicObjectURL(bucket, key string) string {
	return "https://cdn.example.com/" + bucket + "/" + key
}

func TestProjectUploadedImageWinsOverRawURL(t *testing.T) {
	p := NewProjector(fakeAssets{bucket: "banners"})
	b := models.Banner{
		ImageKey: "banners/abc/hero.png",
		ImageURL: "https://elsewhere.example.com/old.png",
	}
	got := p.Project(nil, b)
	if got.ImageURL == nil {
		t.Fatal("expected image URL, got nil")
	}
	want := "https://cdn.example.com/banners/banners/abc/hero.png"
	if *got.ImageURL != want {
		t.Fatalf("expected %q, got %q", want, *got.ImageURL)
	}
}

func TestProjectAbsoluteURLPassthrough(t *testing.T) {
	p := NewProjector(nil)
	req := httptest.NewRequest("GET", "http://shop.example.com/api/v1/banners", nil)

	for _, url := range []string{
		"https://cdn.example.com/hero.png",
		"http://cdn.example.com/hero.png",
	} {
		got := p.Project(req, models.Banner{ImageURL: url})
		if got.ImageURL == nil || *got.ImageURL != url {
			t.Fatalf("absolute URL %q must pass through unchanged, got %v", url, got.ImageURL)
		}
	}
}

func TestProjectRelativeURLAbsolutized(t *testing.T) {
	p := NewProjector(nil)
	req := httptest.NewRequest("GET", "http://shop.example.com/api/v1/banners", nil)

	got := p.Project(req, models.Banner{ImageURL: "/media/banners/hero.png"})
	if got.ImageURL == nil || *got.ImageURL != "http://shop.example.com/media/banners/hero.png" {
		t.Fatalf("expected relative URL absolutized from request host, got %v", got.ImageURL)
	}

	req.Header.Set("X-Forwarded-Proto", "https")
	got = p.Project(req, models.Banner{ImageURL: "media/banners/hero.png"})
	if got.ImageURL == nil || *got.ImageURL != "https://shop.example.com/media/banners/hero.png" {
		t.Fatalf("expected forwarded proto and leading slash applied, got %v", got.ImageURL)
	}
}

func TestProjectNoImage(t *testing.T) {
	p := NewProjector(nil)
	got := p.Project(nil, models.Banner{Title: "bare"})
	if got.ImageURL != nil {
		t.Fatalf("expected nil image URL, got %q", *got.ImageURL)
	}
}

func TestProjectRelativeURLWithoutRequest(t *testing.T) {
	p := NewProjector(nil)
	got := p.Project(nil, models.Banner{ImageURL: "/media/hero.png"})
	if got.ImageURL == nil || *got.ImageURL != "/media/hero.png" {
		t.Fatalf("expected relative URL unchanged without a request, got %v", got.ImageURL)
	}
}

func TestProjectAllEmptyIsNotNil(t *testing.T) {
	p := NewProjector(nil)
	got := p.ProjectAll(nil, nil)
	if got == nil {
		t.Fatal("ProjectAll must return a non-nil slice for empty input")
	}
	if len(got) != 0 {
		t.Fatalf("expected empty slice, got %d entries", len(got))
	}
}
