package model

import "testing"

func TestSummary_Percent(t *testing.T) {
	sum := Summary{
		Total: 4,
		Counts: map[Sentiment]int{
			SentimentPositive: 3,
			SentimentNegative: 1,
		},
	}

	if got := sum.Percent(SentimentPositive); got != 75 {
		t.Errorf("Expected 75, got %v", got)
	}
	if got := sum.Percent(SentimentNeutral); got != 0 {
		t.Errorf("Expected 0 for absent label, got %v", got)
	}
}

func TestSummary_PercentZeroTotal(t *testing.T) {
	var sum Summary
	if got := sum.Percent(SentimentPositive); got != 0 {
		t.Errorf("Expected 0 for empty summary, got %v", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error without input path")
	}

	cfg.Input = "messages.jsonl"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}

	cfg.ChunkSize = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for zero chunk size")
	}

	cfg.ChunkSize = 1
	cfg.Delay = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for negative delay")
	}
}
