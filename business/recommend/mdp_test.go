package recommend

import (
	"math"
	"testing"
)

func TestStateForRatioBoundaries(t *testing.T) {
	cases := []struct {
		ratio float64
		want  BudgetState
	}{
		{0.0, BudgetHigh},
		{0.349, BudgetHigh},
		{0.35, BudgetMedium},
		{0.351, BudgetMedium},
		{0.5, BudgetMedium},
		{0.649, BudgetMedium},
		{0.65, BudgetLow},
		{0.651, BudgetLow},
		{0.849, BudgetLow},
		{0.85, BudgetCritical},
		{0.851, BudgetCritical},
		{1.0, BudgetCritical},
	}

	for _, c := range cases {
		if got := StateForRatio(c.ratio); got != c.want {
			t.Errorf("StateForRatio(%v) = %v, want %v", c.ratio, got, c.want)
		}
	}
}

func TestBudgetStateFor(t *testing.T) {
	p := NewBudgetPlanner(DefaultConfig())

	state, ratio := p.BudgetStateFor(5.0, 25.0)
	if state != BudgetHigh || math.Abs(ratio-0.2) > 1e-9 {
		t.Errorf("BudgetStateFor(5, 25) = %v, %v, want HIGH, 0.2", state, ratio)
	}

	// overspending clamps to 1.0
	state, ratio = p.BudgetStateFor(40.0, 25.0)
	if state != BudgetCritical || ratio != 1.0 {
		t.Errorf("BudgetStateFor(40, 25) = %v, %v, want CRITICAL, 1.0", state, ratio)
	}

	// a non-positive budget resolves to the neutral ratio
	state, ratio = p.BudgetStateFor(10.0, 0)
	if state != BudgetMedium || ratio != 0.5 {
		t.Errorf("BudgetStateFor(10, 0) = %v, %v, want MEDIUM, 0.5", state, ratio)
	}
}

func TestUtilityBounds(t *testing.T) {
	p := NewBudgetPlanner(DefaultConfig())

	prices := []float64{0.5, 2.45, 3.45, 5.95, 9.99}
	ratios := []float64{0.0, 0.2, 0.5, 0.85, 1.0}

	for _, price := range prices {
		for _, ratio := range ratios {
			u := p.Utility(price, ratio, 4.0)
			if u <= 0 || u >= 1 {
				t.Errorf("Utility(%v, %v) = %v, want in (0, 1)", price, ratio, u)
			}
		}
	}
}

func TestUtilityPenalizesCriticalBudget(t *testing.T) {
	p := NewBudgetPlanner(DefaultConfig())

	comfortable := p.Utility(6.0, 0.10, 4.0)
	strained := p.Utility(6.0, 0.95, 4.0)

	if strained >= comfortable {
		t.Errorf("expected utility at 95%% consumption (%v) below utility at 10%% (%v)", strained, comfortable)
	}
}

func TestQLearningScorePrefersHealthyBudget(t *testing.T) {
	p := NewBudgetPlanner(DefaultConfig())
	otherPrices := []float64{2.45, 3.45, 4.45}

	healthy := p.QLearningScore(3.45, 0.10, 25.0, otherPrices)
	strained := p.QLearningScore(3.45, 0.95, 25.0, otherPrices)

	if strained >= healthy {
		t.Errorf("expected score at 95%% consumption (%v) below score at 10%% (%v)", strained, healthy)
	}
}

func TestValueIterationScoreFinite(t *testing.T) {
	p := NewBudgetPlanner(DefaultConfig())
	prices := []float64{2.45, 3.45, 4.45, 5.95}

	for _, ratio := range []float64{0.0, 0.4, 0.9} {
		score := p.ValueIterationScore(3.45, ratio, 25.0, prices)
		if math.IsNaN(score) || math.IsInf(score, 0) {
			t.Fatalf("ValueIterationScore at ratio %v is not finite: %v", ratio, score)
		}
		if score <= 0 {
			t.Errorf("ValueIterationScore at ratio %v = %v, want positive", ratio, score)
		}
	}
}

func TestValueIterationAgreesWithUtilityOrdering(t *testing.T) {
	p := NewBudgetPlanner(DefaultConfig())
	prices := []float64{2.45, 3.45, 4.45, 5.95}

	healthy := p.ValueIterationScore(3.45, 0.10, 25.0, prices)
	strained := p.ValueIterationScore(3.45, 0.95, 25.0, prices)

	if strained >= healthy {
		t.Errorf("expected value-iteration score at 95%% consumption (%v) below 10%% (%v)", strained, healthy)
	}
}

func TestPolicyIterationScore(t *testing.T) {
	p := NewBudgetPlanner(DefaultConfig())
	prices := []float64{2.45, 3.45, 4.45}

	score := p.PolicyIterationScore(3.45, 0.2, 25.0, prices)
	if math.IsNaN(score) || math.IsInf(score, 0) || score <= 0 {
		t.Fatalf("PolicyIterationScore = %v, want finite positive", score)
	}

	// large action spaces fall back to the q-learning path
	var many []float64
	for i := 0; i < 30; i++ {
		many = append(many, 2.0+float64(i)*0.25)
	}
	got := p.PolicyIterationScore(3.45, 0.2, 25.0, many)
	want := p.QLearningScore(3.45, 0.2, 25.0, many)
	if got != want {
		t.Errorf("expected fallback to q-learning score, got %v want %v", got, want)
	}
}

func TestUCB1(t *testing.T) {
	p := NewBudgetPlanner(DefaultConfig())

	if got := p.UCB1(100, 0); !math.IsInf(got, 1) {
		t.Errorf("UCB1 with zero plays = %v, want +Inf", got)
	}

	few := p.UCB1(100, 5)
	many := p.UCB1(100, 50)
	if many >= few {
		t.Errorf("expected bonus to shrink with plays: %v plays -> %v, %v plays -> %v", 5, few, 50, many)
	}
}
