package crm_service

import (
	"testing"

	"omnily-go-admin/model/crm_model"
)

func TestSummarizeCRM(t *testing.T) {
	customers := []crm_model.Customer{
		{Status: StatusVip, TotalSpent: 6000, LifetimeValue: 7200, EngagementScore: 90},
		{Status: StatusActive, TotalSpent: 800, LifetimeValue: 960, EngagementScore: 60},
		{Status: StatusInactive, TotalSpent: 0, LifetimeValue: 0, EngagementScore: 10},
		{Status: "churned", TotalSpent: 200, LifetimeValue: 240, EngagementScore: 0},
	}
	campaigns := []crm_model.MarketingCampaign{
		{Status: crm_model.CampaignStatusRunning, SentCount: 100, ConvertedCount: 10},
		{Status: crm_model.CampaignStatusCompleted, SentCount: 300, ConvertedCount: 30},
		{Status: crm_model.CampaignStatusDraft},
	}

	stats := summarizeCRM(customers, campaigns)

	if stats.TotalCustomers != 4 {
		t.Errorf("TotalCustomers = %d, want 4", stats.TotalCustomers)
	}
	if stats.ActiveCustomers != 2 {
		t.Errorf("ActiveCustomers = %d, want 2", stats.ActiveCustomers)
	}
	if stats.VipCustomers != 1 {
		t.Errorf("VipCustomers = %d, want 1", stats.VipCustomers)
	}
	if stats.ChurnedCustomers != 1 {
		t.Errorf("ChurnedCustomers = %d, want 1", stats.ChurnedCustomers)
	}
	if stats.TotalRevenue != 7000 {
		t.Errorf("TotalRevenue = %v, want 7000", stats.TotalRevenue)
	}
	if stats.AvgCLV != 2100 {
		t.Errorf("AvgCLV = %v, want 2100", stats.AvgCLV)
	}
	if stats.AvgEngagement != 40 {
		t.Errorf("AvgEngagement = %v, want 40", stats.AvgEngagement)
	}
	if stats.ActiveCampaigns != 1 {
		t.Errorf("ActiveCampaigns = %d, want 1", stats.ActiveCampaigns)
	}
	if stats.ConversionRate != 10 {
		t.Errorf("ConversionRate = %v, want 10", stats.ConversionRate)
	}
}

func TestSummarizeCRM_Empty(t *testing.T) {
	stats := summarizeCRM(nil, nil)

	if stats.TotalCustomers != 0 {
		t.Errorf("TotalCustomers = %d, want 0", stats.TotalCustomers)
	}
	if stats.AvgCLV != 0 || stats.AvgEngagement != 0 {
		t.Errorf("averages = %v/%v, want 0/0", stats.AvgCLV, stats.AvgEngagement)
	}
	if stats.ConversionRate != 0 {
		t.Errorf("ConversionRate = %v, want 0", stats.ConversionRate)
	}
}
