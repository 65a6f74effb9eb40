// Package catalog holds the static security rule catalog. It is pure
// data: every category an evaluator can emit maps to its severity,
// finding texts and compliance tags. Evaluators look definitions up at
// finding creation time; a miss degrades the finding to INFO with empty
// texts and is never an error.
package catalog

import (
	"sort"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// Definition is the catalog entry for one rule category.
type Definition struct {
	Severity    models.Severity
	Description string
	Remediation string
	Compliance  []string
}

// Lookup returns the definition for a category. ok is false when the
// category is not in the catalog.
func Lookup(category string) (Definition, bool) {
	def, ok := definitions[category]
	return def, ok
}

// Contains reports whether a category exists in the catalog.
func Contains(category string) bool {
	_, ok := definitions[category]
	return ok
}

// IDs returns every catalog category in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(definitions))
	for id := range definitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var definitions = map[string]Definition{
	// -----------------------------------------------------------------------
	// Compute instance rules
	// -----------------------------------------------------------------------
	"FULL_API_ACCESS": {
		Severity:    models.SeverityCritical,
		Description: "Compute instance has full access to all Cloud APIs via cloud-platform scope",
		Remediation: "Restrict API access scopes to only required APIs. Avoid using cloud-platform scope.",
		Compliance:  []string{"CIS GCP 4.2", "NIST 800-53 AC-6"},
	},
	"PUBLIC_IP_ADDRESS": {
		Severity:    models.SeverityHigh,
		Description: "Compute instance has an external (public) IP address assigned",
		Remediation: "Remove external IP if not required. Use Cloud NAT for outbound access.",
		Compliance:  []string{"CIS GCP 4.9", "NIST 800-53 SC-7"},
	},
	"COMPUTE_SECURE_BOOT_DISABLED": {
		Severity:    models.SeverityMedium,
		Description: "Shielded VM Secure Boot is not enabled on this instance",
		Remediation: "Enable Secure Boot in Shielded VM settings to protect against boot-level malware.",
		Compliance:  []string{"CIS GCP 4.8", "NIST 800-53 SI-7"},
	},
	"CONFIDENTIAL_COMPUTING_DISABLED": {
		Severity:    models.SeverityLow,
		Description: "Confidential Computing is disabled on this N2D instance",
		Remediation: "Enable Confidential VM for sensitive workloads to encrypt data in use.",
		Compliance:  []string{"CIS GCP 4.11", "NIST 800-53 SC-28"},
	},
	"IP_FORWARDING_ENABLED": {
		Severity:    models.SeverityMedium,
		Description: "IP forwarding is enabled, allowing the instance to route traffic",
		Remediation: "Disable IP forwarding unless the instance is acting as a NAT gateway or router.",
		Compliance:  []string{"CIS GCP 4.6", "NIST 800-53 SC-7"},
	},
	"COMPUTE_PROJECT_WIDE_SSH_KEYS_ALLOWED": {
		Severity:    models.SeverityMedium,
		Description: "Instance allows project-wide SSH keys, enabling login from any project key",
		Remediation: "Block project-wide SSH keys and use instance-specific keys instead.",
		Compliance:  []string{"CIS GCP 4.3", "NIST 800-53 AC-17"},
	},
	"DEFAULT_SERVICE_ACCOUNT_USED": {
		Severity:    models.SeverityMedium,
		Description: "Instance uses the default Compute Engine service account",
		Remediation: "Create and use a custom service account with minimal required permissions.",
		Compliance:  []string{"CIS GCP 4.1", "NIST 800-53 AC-6"},
	},
	"OS_LOGIN_DISABLED": {
		Severity:    models.SeverityLow,
		Description: "OS Login is not enabled for centralized SSH key management",
		Remediation: "Enable OS Login for IAM-based SSH access control.",
		Compliance:  []string{"CIS GCP 4.4", "NIST 800-53 IA-2"},
	},
	"SERIAL_PORT_ENABLED": {
		Severity:    models.SeverityMedium,
		Description: "Serial port access is enabled on this instance",
		Remediation: "Disable serial port access to reduce attack surface.",
		Compliance:  []string{"CIS GCP 4.5", "NIST 800-53 AC-3"},
	},
	"INTEGRITY_MONITORING_DISABLED": {
		Severity:    models.SeverityMedium,
		Description: "Shielded VM integrity monitoring is disabled",
		Remediation: "Enable integrity monitoring to detect boot-level tampering.",
		Compliance:  []string{"CIS GCP 4.8", "NIST 800-53 SI-7"},
	},
	"VTPM_DISABLED": {
		Severity:    models.SeverityMedium,
		Description: "Virtual TPM (vTPM) is disabled on this Shielded VM",
		Remediation: "Enable vTPM for measured boot and attestation.",
		Compliance:  []string{"CIS GCP 4.8", "NIST 800-53 SI-7"},
	},
	"DELETION_PROTECTION_DISABLED": {
		Severity:    models.SeverityLow,
		Description: "Deletion protection is not enabled on this instance",
		Remediation: "Enable deletion protection to prevent accidental deletion of critical instances.",
		Compliance:  []string{"NIST 800-53 CP-9"},
	},

	// -----------------------------------------------------------------------
	// GKE cluster rules
	// -----------------------------------------------------------------------
	"PRIVATE_CLUSTER_DISABLED": {
		Severity:    models.SeverityHigh,
		Description: "GKE cluster has a public endpoint (not a private cluster)",
		Remediation: "Create a private cluster with private nodes to limit exposure.",
		Compliance:  []string{"CIS GKE 6.6.2", "NIST 800-53 SC-7"},
	},
	"MASTER_AUTHORIZED_NETWORKS_DISABLED": {
		Severity:    models.SeverityHigh,
		Description: "Master authorized networks are not configured",
		Remediation: "Enable master authorized networks to restrict API server access.",
		Compliance:  []string{"CIS GKE 6.6.3", "NIST 800-53 AC-3"},
	},
	"CLUSTER_SHIELDED_NODES_DISABLED": {
		Severity:    models.SeverityMedium,
		Description: "Shielded GKE nodes are not enabled",
		Remediation: "Enable Shielded GKE Nodes for node integrity verification.",
		Compliance:  []string{"CIS GKE 6.5.5", "NIST 800-53 SI-7"},
	},
	"WORKLOAD_IDENTITY_DISABLED": {
		Severity:    models.SeverityHigh,
		Description: "Workload Identity is not enabled, pods use node service account",
		Remediation: "Enable Workload Identity for fine-grained pod IAM access.",
		Compliance:  []string{"CIS GKE 6.2.2", "NIST 800-53 AC-6"},
	},
	"LEGACY_AUTHORIZATION_ENABLED": {
		Severity:    models.SeverityHigh,
		Description: "Legacy ABAC authorization is enabled instead of RBAC",
		Remediation: "Disable legacy authorization and use RBAC.",
		Compliance:  []string{"CIS GKE 6.8.4", "NIST 800-53 AC-3"},
	},
	"CLUSTER_LOGGING_DISABLED": {
		Severity:    models.SeverityMedium,
		Description: "Cluster logging is not enabled",
		Remediation: "Enable Cloud Logging for cluster audit and monitoring.",
		Compliance:  []string{"CIS GKE 6.7.1", "NIST 800-53 AU-2"},
	},
	"CLUSTER_MONITORING_DISABLED": {
		Severity:    models.SeverityMedium,
		Description: "Cluster monitoring is not enabled",
		Remediation: "Enable Cloud Monitoring for cluster health visibility.",
		Compliance:  []string{"CIS GKE 6.7.1", "NIST 800-53 SI-4"},
	},
	"NETWORK_POLICY_DISABLED": {
		Severity:    models.SeverityMedium,
		Description: "Network policy enforcement is not enabled",
		Remediation: "Enable network policy to control pod-to-pod traffic.",
		Compliance:  []string{"CIS GKE 6.6.7", "NIST 800-53 SC-7"},
	},
	"AUTO_REPAIR_DISABLED": {
		Severity:    models.SeverityLow,
		Description: "Node auto-repair is disabled",
		Remediation: "Enable auto-repair to automatically fix unhealthy nodes.",
		Compliance:  []string{"CIS GKE 6.5.2", "NIST 800-53 CP-10"},
	},
	"AUTO_UPGRADE_DISABLED": {
		Severity:    models.SeverityMedium,
		Description: "Node auto-upgrade is disabled",
		Remediation: "Enable auto-upgrade to receive security patches automatically.",
		Compliance:  []string{"CIS GKE 6.5.3", "NIST 800-53 SI-2"},
	},
	"BINARY_AUTHORIZATION_DISABLED": {
		Severity:    models.SeverityMedium,
		Description: "Binary Authorization is not enabled",
		Remediation: "Enable Binary Authorization to ensure only trusted images are deployed.",
		Compliance:  []string{"NIST 800-53 CM-7"},
	},
	"ALPHA_CLUSTER_ENABLED": {
		Severity:    models.SeverityHigh,
		Description: "Alpha cluster features are enabled (not production-ready)",
		Remediation: "Do not use alpha clusters in production environments.",
		Compliance:  []string{"CIS GKE 6.10.2"},
	},

	// -----------------------------------------------------------------------
	// Storage bucket rules
	// -----------------------------------------------------------------------
	"PUBLIC_BUCKET_ACL": {
		Severity:    models.SeverityCritical,
		Description: "Cloud Storage bucket is publicly accessible",
		Remediation: "Remove allUsers and allAuthenticatedUsers from bucket IAM policy.",
		Compliance:  []string{"CIS GCP 5.1", "NIST 800-53 AC-3", "PCI-DSS 7.1"},
	},
	"BUCKET_POLICY_ONLY_DISABLED": {
		Severity:    models.SeverityMedium,
		Description: "Uniform bucket-level access is not enabled",
		Remediation: "Enable uniform bucket-level access to use IAM exclusively.",
		Compliance:  []string{"CIS GCP 5.2", "NIST 800-53 AC-6"},
	},
	"BUCKET_LOGGING_DISABLED": {
		Severity:    models.SeverityMedium,
		Description: "Access logging is not enabled for this bucket",
		Remediation: "Enable access logging to track bucket access patterns.",
		Compliance:  []string{"CIS GCP 5.3", "NIST 800-53 AU-2"},
	},
	"OBJECT_VERSIONING_DISABLED": {
		Severity:    models.SeverityLow,
		Description: "Object versioning is not enabled",
		Remediation: "Enable versioning to protect against accidental deletion/overwrite.",
		Compliance:  []string{"NIST 800-53 CP-9"},
	},
	"BUCKET_RETENTION_POLICY_NOT_LOCKED": {
		Severity:    models.SeverityLow,
		Description: "Bucket has retention policy but it is not locked",
		Remediation: "Lock retention policy to prevent unauthorized changes.",
		Compliance:  []string{"NIST 800-53 AU-11"},
	},
	"PUBLIC_ACCESS_PREVENTION_DISABLED": {
		Severity:    models.SeverityHigh,
		Description: "Public access prevention is not enforced on this bucket",
		Remediation: "Enable public access prevention to block public ACLs.",
		Compliance:  []string{"CIS GCP 5.1", "NIST 800-53 AC-3"},
	},

	// -----------------------------------------------------------------------
	// Firewall / network rules
	// -----------------------------------------------------------------------
	"OPEN_SSH_PORT": {
		Severity:    models.SeverityCritical,
		Description: "Firewall rule allows SSH (port 22) from any source (0.0.0.0/0)",
		Remediation: "Restrict SSH access to specific IP ranges or use IAP for SSH.",
		Compliance:  []string{"CIS GCP 3.6", "NIST 800-53 SC-7", "PCI-DSS 1.2.1"},
	},
	"OPEN_RDP_PORT": {
		Severity:    models.SeverityCritical,
		Description: "Firewall rule allows RDP (port 3389) from any source (0.0.0.0/0)",
		Remediation: "Restrict RDP access to specific IP ranges or use IAP for RDP.",
		Compliance:  []string{"CIS GCP 3.7", "NIST 800-53 SC-7", "PCI-DSS 1.2.1"},
	},
	"OPEN_FIREWALL": {
		Severity:    models.SeverityCritical,
		Description: "Firewall rule allows all traffic from any source",
		Remediation: "Restrict firewall rules to specific ports and source ranges.",
		Compliance:  []string{"CIS GCP 3.9", "NIST 800-53 SC-7"},
	},
	"EGRESS_DENY_RULE_NOT_SET": {
		Severity:    models.SeverityMedium,
		Description: "No egress deny rule configured for VPC",
		Remediation: "Create a low-priority deny-all egress rule and allow specific traffic.",
		Compliance:  []string{"PCI-DSS 7.2", "NIST 800-53 SC-7"},
	},
	"FIREWALL_RULE_LOGGING_DISABLED": {
		Severity:    models.SeverityLow,
		Description: "Firewall rule logging is not enabled",
		Remediation: "Enable logging on firewall rules for audit and troubleshooting.",
		Compliance:  []string{"NIST 800-53 AU-2", "PCI-DSS 10.1"},
	},
	"OPEN_MYSQL_PORT": {
		Severity:    models.SeverityHigh,
		Description: "Firewall allows MySQL (port 3306) from any source",
		Remediation: "Restrict MySQL access to specific application servers only.",
		Compliance:  []string{"NIST 800-53 SC-7", "PCI-DSS 1.2.1"},
	},
	"OPEN_POSTGRESQL_PORT": {
		Severity:    models.SeverityHigh,
		Description: "Firewall allows PostgreSQL (port 5432) from any source",
		Remediation: "Restrict PostgreSQL access to specific application servers only.",
		Compliance:  []string{"NIST 800-53 SC-7", "PCI-DSS 1.2.1"},
	},
	"OPEN_MONGODB_PORT": {
		Severity:    models.SeverityHigh,
		Description: "Firewall allows MongoDB (port 27017) from any source",
		Remediation: "Restrict MongoDB access and enable authentication.",
		Compliance:  []string{"NIST 800-53 SC-7", "PCI-DSS 1.2.1"},
	},
	"OPEN_REDIS_PORT": {
		Severity:    models.SeverityHigh,
		Description: "Firewall allows Redis (port 6379) from any source",
		Remediation: "Restrict Redis access and enable authentication.",
		Compliance:  []string{"NIST 800-53 SC-7"},
	},
	"OPEN_ELASTICSEARCH_PORT": {
		Severity:    models.SeverityHigh,
		Description: "Firewall allows Elasticsearch (port 9200/9300) from any source",
		Remediation: "Restrict Elasticsearch access to specific clients.",
		Compliance:  []string{"NIST 800-53 SC-7"},
	},
	"OPEN_HTTP_PORT": {
		Severity:    models.SeverityMedium,
		Description: "Firewall allows HTTP (port 80) from any source",
		Remediation: "Consider using HTTPS-only access via load balancers.",
		Compliance:  []string{"NIST 800-53 SC-8"},
	},
	"OPEN_FTP_PORT": {
		Severity:    models.SeverityHigh,
		Description: "Firewall allows FTP (ports 20-21) from any source",
		Remediation: "Use SFTP/SCP instead of FTP for secure file transfer.",
		Compliance:  []string{"NIST 800-53 SC-8", "PCI-DSS 4.1"},
	},
	"OPEN_TELNET_PORT": {
		Severity:    models.SeverityCritical,
		Description: "Firewall allows Telnet (port 23) from any source",
		Remediation: "Disable Telnet and use SSH for remote access.",
		Compliance:  []string{"NIST 800-53 SC-8", "PCI-DSS 2.3"},
	},
	"OPEN_DNS_PORT": {
		Severity:    models.SeverityMedium,
		Description: "Firewall allows DNS (port 53) from any source",
		Remediation: "Restrict DNS access unless running a public DNS server.",
		Compliance:  []string{"NIST 800-53 SC-7"},
	},
	"OPEN_SMTP_PORT": {
		Severity:    models.SeverityMedium,
		Description: "Firewall allows SMTP (port 25) from any source",
		Remediation: "Restrict SMTP access to mail servers only.",
		Compliance:  []string{"NIST 800-53 SC-7"},
	},

	// -----------------------------------------------------------------------
	// Cloud SQL rules
	// -----------------------------------------------------------------------
	"SQL_PUBLIC_IP": {
		Severity:    models.SeverityCritical,
		Description: "Cloud SQL instance has a public IP address",
		Remediation: "Use private IP only and connect via Cloud SQL Auth Proxy or VPC.",
		Compliance:  []string{"CIS GCP 6.6", "NIST 800-53 SC-7"},
	},
	"SQL_SSL_NOT_ENFORCED": {
		Severity:    models.SeverityHigh,
		Description: "SSL/TLS connections are not required for Cloud SQL",
		Remediation: "Enable 'Require SSL' to encrypt connections.",
		Compliance:  []string{"CIS GCP 6.1", "NIST 800-53 SC-8", "PCI-DSS 4.1"},
	},
	"SQL_AUTO_BACKUP_DISABLED": {
		Severity:    models.SeverityMedium,
		Description: "Automated backups are not enabled for Cloud SQL",
		Remediation: "Enable automated backups with appropriate retention period.",
		Compliance:  []string{"CIS GCP 6.7", "NIST 800-53 CP-9"},
	},
	"SQL_NO_ROOT_PASSWORD": {
		Severity:    models.SeverityCritical,
		Description: "Cloud SQL root user has no password set",
		Remediation: "Set a strong password for the root/admin user.",
		Compliance:  []string{"CIS GCP 6.3", "NIST 800-53 IA-5", "PCI-DSS 8.2"},
	},
	"SQL_AUTHORIZED_NETWORKS_WIDE": {
		Severity:    models.SeverityHigh,
		Description: "Cloud SQL authorized networks include 0.0.0.0/0",
		Remediation: "Restrict authorized networks to specific IP ranges.",
		Compliance:  []string{"CIS GCP 6.5", "NIST 800-53 SC-7"},
	},
	"SQL_LOCAL_INFILE_ENABLED": {
		Severity:    models.SeverityMedium,
		Description: "MySQL local_infile flag is enabled",
		Remediation: "Disable local_infile to prevent local file loading attacks.",
		Compliance:  []string{"CIS GCP 6.1.2", "NIST 800-53 CM-7"},
	},
	"SQL_CROSS_DB_OWNERSHIP_ENABLED": {
		Severity:    models.SeverityMedium,
		Description: "SQL Server cross db ownership chaining is enabled",
		Remediation: "Disable cross database ownership chaining.",
		Compliance:  []string{"CIS GCP 6.3.1", "NIST 800-53 AC-6"},
	},
	"SQL_CONTAINED_DATABASE_AUTH": {
		Severity:    models.SeverityMedium,
		Description: "SQL Server contained database authentication is enabled",
		Remediation: "Disable contained database authentication.",
		Compliance:  []string{"CIS GCP 6.3.2", "NIST 800-53 IA-2"},
	},
	"SQL_LOG_CHECKPOINTS_DISABLED": {
		Severity:    models.SeverityLow,
		Description: "PostgreSQL log_checkpoints is disabled",
		Remediation: "Enable log_checkpoints for performance monitoring.",
		Compliance:  []string{"CIS GCP 6.2.1"},
	},
	"SQL_LOG_CONNECTIONS_DISABLED": {
		Severity:    models.SeverityLow,
		Description: "PostgreSQL log_connections is disabled",
		Remediation: "Enable log_connections for audit trail.",
		Compliance:  []string{"CIS GCP 6.2.2", "NIST 800-53 AU-2"},
	},
	"SQL_LOG_DISCONNECTIONS_DISABLED": {
		Severity:    models.SeverityLow,
		Description: "PostgreSQL log_disconnections is disabled",
		Remediation: "Enable log_disconnections for complete session logging.",
		Compliance:  []string{"CIS GCP 6.2.3", "NIST 800-53 AU-2"},
	},
	"SQL_LOG_LOCK_WAITS_DISABLED": {
		Severity:    models.SeverityLow,
		Description: "PostgreSQL log_lock_waits is disabled",
		Remediation: "Enable log_lock_waits to detect deadlocks.",
		Compliance:  []string{"CIS GCP 6.2.4"},
	},
}
