package models

// ---------------------------------------------------------------------------
// GCP raw resource snapshots (collected by providers, consumed by evaluators)
// ---------------------------------------------------------------------------

// ServiceAccount is a service account attached to a compute instance.
type ServiceAccount struct {
	Email  string   `json:"email"`
	Scopes []string `json:"scopes,omitempty"`
}

// AccessConfig is an external access configuration on a network interface.
// A non-empty NatIP means the interface is reachable from the internet.
type AccessConfig struct {
	NatIP string `json:"nat_ip,omitempty"`
}

// NetworkInterface is a single NIC on a compute instance.
type NetworkInterface struct {
	AccessConfigs []AccessConfig `json:"access_configs,omitempty"`
}

// ShieldedVMConfig holds the Shielded VM flags of an instance. An
// instance without a shielded configuration maps to the zero value,
// which reads as all protections disabled.
type ShieldedVMConfig struct {
	SecureBoot          bool `json:"enable_secure_boot"`
	VTPM                bool `json:"enable_vtpm"`
	IntegrityMonitoring bool `json:"enable_integrity_monitoring"`
}

// ComputeInstance represents a single collected compute instance.
type ComputeInstance struct {
	Name                       string             `json:"name"`
	Zone                       string             `json:"zone"`
	MachineType                string             `json:"machine_type"`
	CanIPForward               bool               `json:"can_ip_forward"`
	DeletionProtection         bool               `json:"deletion_protection"`
	ConfidentialComputeEnabled bool               `json:"confidential_compute_enabled"`
	Shielded                   ShieldedVMConfig   `json:"shielded_instance_config"`
	ServiceAccounts            []ServiceAccount   `json:"service_accounts,omitempty"`
	NetworkInterfaces          []NetworkInterface `json:"network_interfaces,omitempty"`
	Metadata                   map[string]string  `json:"metadata,omitempty"`
}

// NodeManagement holds the auto-repair and auto-upgrade settings of a
// node pool. Pools that report no management block carry nil and are
// skipped by the evaluator.
type NodeManagement struct {
	AutoRepair  bool `json:"auto_repair"`
	AutoUpgrade bool `json:"auto_upgrade"`
}

// NodePool is a single node pool of a GKE cluster.
type NodePool struct {
	Name       string          `json:"name"`
	Management *NodeManagement `json:"management,omitempty"`
}

// GKECluster represents a single collected GKE cluster.
type GKECluster struct {
	Name                            string     `json:"name"`
	Location                        string     `json:"location"`
	PrivateNodesEnabled             bool       `json:"private_nodes_enabled"`
	MasterAuthorizedNetworksEnabled bool       `json:"master_authorized_networks_enabled"`
	ShieldedNodesEnabled            bool       `json:"shielded_nodes_enabled"`
	WorkloadPool                    string     `json:"workload_pool,omitempty"`
	LegacyABACEnabled               bool       `json:"legacy_abac_enabled"`
	LoggingService                  string     `json:"logging_service,omitempty"`
	MonitoringService               string     `json:"monitoring_service,omitempty"`
	NetworkPolicyEnabled            bool       `json:"network_policy_enabled"`
	BinaryAuthorizationEnabled      bool       `json:"binary_authorization_enabled"`
	KubernetesAlphaEnabled          bool       `json:"kubernetes_alpha_enabled"`
	NodePools                       []NodePool `json:"node_pools,omitempty"`
}

// StorageBucket represents a single collected storage bucket.
// IAMMembers flattens every member of every role binding on the bucket.
type StorageBucket struct {
	Name                     string   `json:"name"`
	Location                 string   `json:"location"`
	IAMMembers               []string `json:"iam_members,omitempty"`
	UniformBucketLevelAccess bool     `json:"uniform_bucket_level_access"`
	LoggingEnabled           bool     `json:"logging_enabled"`
	VersioningEnabled        bool     `json:"versioning_enabled"`
	PublicAccessPrevention   string   `json:"public_access_prevention,omitempty"`
	HasRetentionPolicy       bool     `json:"has_retention_policy"`
	RetentionPolicyLocked    bool     `json:"retention_policy_locked"`
}

// FirewallProtocolPorts is one allowed or denied protocol entry on a
// firewall rule. An empty Ports list means every port of the protocol.
type FirewallProtocolPorts struct {
	Protocol string   `json:"protocol"`
	Ports    []string `json:"ports,omitempty"`
}

// FirewallRule represents a single collected VPC firewall rule.
type FirewallRule struct {
	Name           string                  `json:"name"`
	Direction      string                  `json:"direction"` // INGRESS | EGRESS
	SourceRanges   []string                `json:"source_ranges,omitempty"`
	Allowed        []FirewallProtocolPorts `json:"allowed,omitempty"`
	Denied         []FirewallProtocolPorts `json:"denied,omitempty"`
	LoggingEnabled bool                    `json:"logging_enabled"`
}

// SQLIPConfig holds the network exposure settings of a SQL instance.
// Instances without an IP configuration block carry nil and skip the
// related checks.
type SQLIPConfig struct {
	IPv4Enabled        bool     `json:"ipv4_enabled"`
	RequireSSL         bool     `json:"require_ssl"`
	AuthorizedNetworks []string `json:"authorized_networks,omitempty"`
}

// SQLInstance represents a single collected Cloud SQL instance.
type SQLInstance struct {
	Name            string            `json:"name"`
	Region          string            `json:"region,omitempty"`
	GceZone         string            `json:"gce_zone,omitempty"`
	DatabaseVersion string            `json:"database_version"`
	IPConfig        *SQLIPConfig      `json:"ip_configuration,omitempty"`
	BackupEnabled   bool              `json:"backup_enabled"`
	DatabaseFlags   map[string]string `json:"database_flags,omitempty"`
}

// Location resolves the reporting location of a SQL instance: region
// first, then GCE zone, then global.
func (s SQLInstance) Location() string {
	if s.Region != "" {
		return s.Region
	}
	if s.GceZone != "" {
		return s.GceZone
	}
	return "global"
}
