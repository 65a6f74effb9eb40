package compute

import (
	"strings"

	"cloud.google.com/go/compute/apiv1/computepb"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// instanceSnapshot converts an API instance into the internal snapshot
// consumed by the rule engine. Zone and machine type arrive as full
// resource URLs and are reduced to their short names.
func instanceSnapshot(inst *computepb.Instance) models.ComputeInstance {
	snap := models.ComputeInstance{
		Name:                       inst.GetName(),
		Zone:                       lastSegment(inst.GetZone()),
		MachineType:                lastSegment(inst.GetMachineType()),
		CanIPForward:               inst.GetCanIpForward(),
		DeletionProtection:         inst.GetDeletionProtection(),
		ConfidentialComputeEnabled: inst.GetConfidentialInstanceConfig().GetEnableConfidentialCompute(),
	}

	if sc := inst.GetShieldedInstanceConfig(); sc != nil {
		snap.Shielded = models.ShieldedVMConfig{
			SecureBoot:          sc.GetEnableSecureBoot(),
			VTPM:                sc.GetEnableVtpm(),
			IntegrityMonitoring: sc.GetEnableIntegrityMonitoring(),
		}
	}

	for _, sa := range inst.GetServiceAccounts() {
		snap.ServiceAccounts = append(snap.ServiceAccounts, models.ServiceAccount{
			Email:  sa.GetEmail(),
			Scopes: sa.GetScopes(),
		})
	}

	for _, nic := range inst.GetNetworkInterfaces() {
		var configs []models.AccessConfig
		for _, ac := range nic.GetAccessConfigs() {
			configs = append(configs, models.AccessConfig{NatIP: ac.GetNatIP()})
		}
		snap.NetworkInterfaces = append(snap.NetworkInterfaces, models.NetworkInterface{
			AccessConfigs: configs,
		})
	}

	if items := inst.GetMetadata().GetItems(); len(items) > 0 {
		snap.Metadata = make(map[string]string, len(items))
		for _, item := range items {
			snap.Metadata[item.GetKey()] = item.GetValue()
		}
	}

	return snap
}

// firewallSnapshot converts an API firewall rule into the internal snapshot.
func firewallSnapshot(fw *computepb.Firewall) models.FirewallRule {
	rule := models.FirewallRule{
		Name:           fw.GetName(),
		Direction:      fw.GetDirection(),
		SourceRanges:   fw.GetSourceRanges(),
		LoggingEnabled: fw.GetLogConfig().GetEnable(),
	}

	for _, a := range fw.GetAllowed() {
		rule.Allowed = append(rule.Allowed, models.FirewallProtocolPorts{
			Protocol: a.GetIPProtocol(),
			Ports:    a.GetPorts(),
		})
	}
	for _, d := range fw.GetDenied() {
		rule.Denied = append(rule.Denied, models.FirewallProtocolPorts{
			Protocol: d.GetIPProtocol(),
			Ports:    d.GetPorts(),
		})
	}

	return rule
}

// lastSegment returns the part of a resource URL after the final slash,
// or the input unchanged when it contains none.
func lastSegment(url string) string {
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		return url[i+1:]
	}
	return url
}
