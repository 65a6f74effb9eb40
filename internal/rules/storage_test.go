package rules

import (
	"testing"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

func hardenedBucket() models.StorageBucket {
	return models.StorageBucket{
		Name:                     "prod-data",
		Location:                 "EU",
		UniformBucketLevelAccess: true,
		LoggingEnabled:           true,
		VersioningEnabled:        true,
		PublicAccessPrevention:   "enforced",
		HasRetentionPolicy:       true,
		RetentionPolicyLocked:    true,
	}
}

func TestEvaluateStorageBucket_Hardened(t *testing.T) {
	findings, err := EvaluateStorageBucket("prod-app", hardenedBucket())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("want 0 findings for hardened bucket, got %v", categorySet(findings))
	}
}

// TestEvaluateStorageBucket_PublicMembers verifies one PUBLIC_BUCKET_ACL
// finding regardless of how many public members appear in the policy.
func TestEvaluateStorageBucket_PublicMembers(t *testing.T) {
	bucket := hardenedBucket()
	bucket.IAMMembers = []string{
		"user:admin@example.com",
		"allUsers",
		"allAuthenticatedUsers",
	}

	findings, err := EvaluateStorageBucket("prod-app", bucket)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := categorySet(findings)
	if got["PUBLIC_BUCKET_ACL"] != 1 {
		t.Errorf("PUBLIC_BUCKET_ACL: got %d; want 1", got["PUBLIC_BUCKET_ACL"])
	}
	if len(findings) != 1 {
		t.Errorf("want exactly 1 finding, got %v", got)
	}
	if findings[0].Severity != models.SeverityCritical {
		t.Errorf("severity: got %q; want CRITICAL", findings[0].Severity)
	}
}

func TestEvaluateStorageBucket_PrivateMembersNotFlagged(t *testing.T) {
	bucket := hardenedBucket()
	bucket.IAMMembers = []string{"user:admin@example.com", "serviceAccount:ci@prod-app.iam.gserviceaccount.com"}

	findings, err := EvaluateStorageBucket("prod-app", bucket)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if categorySet(findings)["PUBLIC_BUCKET_ACL"] != 0 {
		t.Error("private members must not be flagged as public")
	}
}

func TestEvaluateStorageBucket_Defaults(t *testing.T) {
	bucket := models.StorageBucket{Name: "scratch"}

	findings, err := EvaluateStorageBucket("dev-sandbox", bucket)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"BUCKET_POLICY_ONLY_DISABLED",
		"BUCKET_LOGGING_DISABLED",
		"OBJECT_VERSIONING_DISABLED",
		"PUBLIC_ACCESS_PREVENTION_DISABLED",
	}
	got := categorySet(findings)
	for _, category := range want {
		if got[category] != 1 {
			t.Errorf("category %s: got %d; want 1", category, got[category])
		}
	}
	// No retention policy at all: the lock rule must stay silent.
	if got["BUCKET_RETENTION_POLICY_NOT_LOCKED"] != 0 {
		t.Errorf("bucket without retention policy must not be flagged: %v", got)
	}
	if len(findings) != len(want) {
		t.Errorf("want %d findings, got %v", len(want), got)
	}

	for _, f := range findings {
		if f.ResourceName != "//storage.googleapis.com/projects/_/buckets/scratch" {
			t.Errorf("resource_name: got %q", f.ResourceName)
		}
		if f.ResourceLocation != "global" {
			t.Errorf("location fallback: got %q; want global", f.ResourceLocation)
		}
	}
}

func TestEvaluateStorageBucket_UnlockedRetention(t *testing.T) {
	bucket := hardenedBucket()
	bucket.RetentionPolicyLocked = false

	findings, err := EvaluateStorageBucket("prod-app", bucket)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := categorySet(findings)
	if got["BUCKET_RETENTION_POLICY_NOT_LOCKED"] != 1 {
		t.Errorf("unlocked retention policy must be flagged: %v", got)
	}
	if len(findings) != 1 {
		t.Errorf("want exactly 1 finding, got %v", got)
	}
}

func TestEvaluateStorageBucket_InheritedPreventionFlagged(t *testing.T) {
	bucket := hardenedBucket()
	bucket.PublicAccessPrevention = "inherited"

	findings, err := EvaluateStorageBucket("prod-app", bucket)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if categorySet(findings)["PUBLIC_ACCESS_PREVENTION_DISABLED"] != 1 {
		t.Error("inherited public access prevention must be flagged")
	}
}

func TestEvaluateStorageBucket_MissingName(t *testing.T) {
	_, err := EvaluateStorageBucket("prod-app", models.StorageBucket{Location: "US"})
	if err == nil {
		t.Fatal("want error for snapshot without a name")
	}
}
