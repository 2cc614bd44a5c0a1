package config

import "testing"

func TestParseCORSOrigins_LocalDefaultsToWildcard(t *testing.T) {
	origins := parseCORSOrigins("", "local")
	if len(origins) != 1 || origins[0] != "*" {
		t.Errorf("expected [*], got %v", origins)
	}
}

func TestParseCORSOrigins_ProdDefaultsToNone(t *testing.T) {
	if origins := parseCORSOrigins("", "prod"); origins != nil {
		t.Errorf("expected nil, got %v", origins)
	}
}

func TestParseCORSOrigins_TrimsEntries(t *testing.T) {
	origins := parseCORSOrigins(" https://a.example , https://b.example ,", "prod")
	if len(origins) != 2 {
		t.Fatalf("expected 2 origins, got %v", origins)
	}
	if origins[0] != "https://a.example" || origins[1] != "https://b.example" {
		t.Errorf("unexpected origins: %v", origins)
	}
}

func TestBlobConfig_EffectiveMode(t *testing.T) {
	cases := []struct {
		name string
		cfg  BlobConfig
		want string
	}{
		{"explicit local", BlobConfig{Mode: BlobModeLocal}, BlobModeLocal},
		{"explicit s3", BlobConfig{Mode: BlobModeS3}, BlobModeS3},
		{"auto without s3 config", BlobConfig{Mode: BlobModeAuto}, BlobModeLocal},
		{
			"auto with full s3 config",
			BlobConfig{Mode: BlobModeAuto, S3: S3Config{
				Endpoint: "https://s3.example", Region: "eu-west-1", Bucket: "b",
				AccessKeyID: "k", SecretAccessKey: "s",
			}},
			BlobModeS3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.EffectiveMode(); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestS3Config_MissingRequired(t *testing.T) {
	cfg := S3Config{Endpoint: "https://s3.example", Bucket: "b"}
	missing := cfg.MissingRequired()
	if len(missing) != 3 {
		t.Errorf("expected 3 missing keys, got %v", missing)
	}
}
