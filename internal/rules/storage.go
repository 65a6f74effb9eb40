package rules

import (
	"fmt"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// publicMembers are the IAM members that make a bucket world-readable.
var publicMembers = map[string]bool{
	"allUsers":              true,
	"allAuthenticatedUsers": true,
}

// EvaluateStorageBucket checks one storage bucket snapshot against the
// storage rule set. A bucket with no location reports as global. At
// most one PUBLIC_BUCKET_ACL finding is emitted no matter how many
// bindings include a public member.
func EvaluateStorageBucket(project string, bucket models.StorageBucket) ([]models.Finding, error) {
	if bucket.Name == "" {
		return nil, fmt.Errorf("bucket snapshot in project %s has no name", project)
	}

	resource := fmt.Sprintf("//storage.googleapis.com/projects/_/buckets/%s", bucket.Name)
	location := bucket.Location
	if location == "" {
		location = "global"
	}
	var findings []models.Finding
	add := func(category string) {
		findings = append(findings, newFinding(category, resource, models.ResourceBucket, project, location))
	}

	for _, member := range bucket.IAMMembers {
		if publicMembers[member] {
			add("PUBLIC_BUCKET_ACL")
			break
		}
	}
	if !bucket.UniformBucketLevelAccess {
		add("BUCKET_POLICY_ONLY_DISABLED")
	}
	if !bucket.LoggingEnabled {
		add("BUCKET_LOGGING_DISABLED")
	}
	if !bucket.VersioningEnabled {
		add("OBJECT_VERSIONING_DISABLED")
	}
	if bucket.PublicAccessPrevention != "enforced" {
		add("PUBLIC_ACCESS_PREVENTION_DISABLED")
	}
	if bucket.HasRetentionPolicy && !bucket.RetentionPolicyLocked {
		add("BUCKET_RETENTION_POLICY_NOT_LOCKED")
	}

	return findings, nil
}
