package analytics_service

import (
	"testing"

	"omnily-go-admin/model/crm_model"
)

func TestCampaignRates(t *testing.T) {
	c := crm_model.MarketingCampaign{
		Id:           "c1",
		Subject:      "Summer sale",
		Type:         "email",
		SentCount:    200,
		OpenedCount:  50,
		ClickedCount: 10,
	}

	got := campaignRates(c)
	if got.OpenRate != 25 {
		t.Errorf("OpenRate = %v, want 25", got.OpenRate)
	}
	if got.ClickRate != 5 {
		t.Errorf("ClickRate = %v, want 5", got.ClickRate)
	}
	if got.ConversionRate != 20 {
		t.Errorf("ConversionRate = %v, want 20", got.ConversionRate)
	}
}

func TestCampaignRates_ZeroCounters(t *testing.T) {
	got := campaignRates(crm_model.MarketingCampaign{Id: "c2"})
	if got.OpenRate != 0 || got.ClickRate != 0 || got.ConversionRate != 0 {
		t.Errorf("rates on zero counters = %v/%v/%v, want 0/0/0",
			got.OpenRate, got.ClickRate, got.ConversionRate)
	}
	if got.Name != "Untitled campaign" {
		t.Errorf("Name = %q, want fallback title", got.Name)
	}
	if got.Type != "custom" {
		t.Errorf("Type = %q, want custom", got.Type)
	}
}
