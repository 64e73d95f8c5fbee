package recommend

// Config collects every tunable of the three models and the ensemble so the
// engine stays testable without touching code. Components receive it by value
// and hold no other state.
type Config struct {
	TopN              int
	HistoryLimit      int
	HistoryWindowDays int
	// drinks bought within this many days are excluded from candidates
	ExclusionWindowDays float64

	// constraint filter
	SimilarPriceBand     float64
	LCVWeight            float64
	PreferenceWeight     float64
	WeakPreferenceWeight float64
	DiversityWeight      float64
	RecentCategoryWindow int
	FallbackCategory     string

	// preference model
	AlphaPrior           float64
	PriorFloor           float64
	UserPriorBlendCap    float64
	UserPriorBlendScale  float64
	DecayRateConsistent  float64
	DecayRateExploratory float64
	LikelihoodFloor      float64
	MoodWeight           float64
	PriceWeight          float64
	CategoryWeight       float64
	ContextWeight        float64
	ThompsonBonus        float64
	CredibleZ            float64
	UncertaintyBonus     float64
	UncertaintyThreshold float64
	DataWeightCap        float64
	DataWeightScale      float64

	// budget planner
	Gamma              float64
	RiskAversion       float64
	LossAversion       float64
	GainCurvature      float64
	ReferenceRatio     float64
	OverrunPenalty     float64
	SatisfactionWeight float64
	ValueBonusWeight   float64
	QualityBonusCap    float64
	LookaheadSteps     int
	ValueIterGrid      int
	ValueIterTol       float64
	ValueIterMax       int
	PolicyIterGrid     int
	PolicyEvalSweeps   int
	PolicyIterMax      int
	PolicyActionCap    int
	UCBExploration     float64

	// ensemble
	BaseConfidence           float64
	ConfidencePerRecord      float64
	ConfidenceCap            float64
	BayesWeight              float64
	MDPWeight                float64
	CSPWeight                float64
	JitterScale              float64
	MMRRelevanceWeight       float64
	MMRSimilarityWeight      float64
	SimilarityPriceWeight    float64
	SimilarityCategoryWeight float64
	PriceNorm                float64
}

const (
	defaultTopN                = 3
	defaultHistoryLimit        = 50
	defaultHistoryWindowDays   = 365
	defaultExclusionWindowDays = 3.0

	defaultSimilarPriceBand     = 1.5
	defaultLCVWeight            = 0.3
	defaultPreferenceWeight     = 0.5
	defaultWeakPreferenceWeight = 0.2
	defaultDiversityWeight      = 0.2
	defaultRecentCategoryWindow = 3
	defaultFallbackCategory     = "Other"

	defaultAlphaPrior           = 1.0
	defaultPriorFloor           = 0.5
	defaultUserPriorBlendCap    = 0.5
	defaultUserPriorBlendScale  = 20.0
	defaultDecayRateConsistent  = 0.05
	defaultDecayRateExploratory = 0.20
	defaultLikelihoodFloor      = 0.001
	defaultMoodWeight           = 0.35
	defaultPriceWeight          = 0.30
	defaultCategoryWeight       = 0.25
	defaultContextWeight        = 0.10
	defaultThompsonBonus        = 0.1
	defaultCredibleZ            = 1.96
	defaultUncertaintyBonus     = 0.02
	defaultUncertaintyThreshold = 0.3
	defaultDataWeightCap        = 0.85
	defaultDataWeightScale      = 40.0

	defaultGamma              = 0.95
	defaultRiskAversion       = 0.5
	defaultLossAversion       = 2.25
	defaultGainCurvature      = 1.0
	defaultReferenceRatio     = 0.5
	defaultOverrunPenalty     = 5.0
	defaultSatisfactionWeight = 0.4
	defaultValueBonusWeight   = 0.3
	defaultQualityBonusCap    = 0.2
	defaultLookaheadSteps     = 2
	defaultValueIterGrid      = 30
	defaultValueIterTol       = 0.001
	defaultValueIterMax       = 150
	defaultPolicyIterGrid     = 25
	defaultPolicyEvalSweeps   = 20
	defaultPolicyIterMax      = 50
	defaultPolicyActionCap    = 20
	defaultUCBExploration     = 1.4

	defaultBaseConfidence           = 0.35
	defaultConfidencePerRecord      = 0.02
	defaultConfidenceCap            = 0.75
	defaultBayesWeight              = 0.50
	defaultMDPWeight                = 0.35
	defaultCSPWeight                = 0.15
	defaultJitterScale              = 0.01
	defaultMMRRelevanceWeight       = 0.7
	defaultMMRSimilarityWeight      = 0.3
	defaultSimilarityPriceWeight    = 0.4
	defaultSimilarityCategoryWeight = 0.6
	defaultPriceNorm                = 10.0
)

func DefaultConfig() Config {
	return Config{
		TopN:                defaultTopN,
		HistoryLimit:        defaultHistoryLimit,
		HistoryWindowDays:   defaultHistoryWindowDays,
		ExclusionWindowDays: defaultExclusionWindowDays,

		SimilarPriceBand:     defaultSimilarPriceBand,
		LCVWeight:            defaultLCVWeight,
		PreferenceWeight:     defaultPreferenceWeight,
		WeakPreferenceWeight: defaultWeakPreferenceWeight,
		DiversityWeight:      defaultDiversityWeight,
		RecentCategoryWindow: defaultRecentCategoryWindow,
		FallbackCategory:     defaultFallbackCategory,

		AlphaPrior:           defaultAlphaPrior,
		PriorFloor:           defaultPriorFloor,
		UserPriorBlendCap:    defaultUserPriorBlendCap,
		UserPriorBlendScale:  defaultUserPriorBlendScale,
		DecayRateConsistent:  defaultDecayRateConsistent,
		DecayRateExploratory: defaultDecayRateExploratory,
		LikelihoodFloor:      defaultLikelihoodFloor,
		MoodWeight:           defaultMoodWeight,
		PriceWeight:          defaultPriceWeight,
		CategoryWeight:       defaultCategoryWeight,
		ContextWeight:        defaultContextWeight,
		ThompsonBonus:        defaultThompsonBonus,
		CredibleZ:            defaultCredibleZ,
		UncertaintyBonus:     defaultUncertaintyBonus,
		UncertaintyThreshold: defaultUncertaintyThreshold,
		DataWeightCap:        defaultDataWeightCap,
		DataWeightScale:      defaultDataWeightScale,

		Gamma:              defaultGamma,
		RiskAversion:       defaultRiskAversion,
		LossAversion:       defaultLossAversion,
		GainCurvature:      defaultGainCurvature,
		ReferenceRatio:     defaultReferenceRatio,
		OverrunPenalty:     defaultOverrunPenalty,
		SatisfactionWeight: defaultSatisfactionWeight,
		ValueBonusWeight:   defaultValueBonusWeight,
		QualityBonusCap:    defaultQualityBonusCap,
		LookaheadSteps:     defaultLookaheadSteps,
		ValueIterGrid:      defaultValueIterGrid,
		ValueIterTol:       defaultValueIterTol,
		ValueIterMax:       defaultValueIterMax,
		PolicyIterGrid:     defaultPolicyIterGrid,
		PolicyEvalSweeps:   defaultPolicyEvalSweeps,
		PolicyIterMax:      defaultPolicyIterMax,
		PolicyActionCap:    defaultPolicyActionCap,
		UCBExploration:     defaultUCBExploration,

		BaseConfidence:           defaultBaseConfidence,
		ConfidencePerRecord:      defaultConfidencePerRecord,
		ConfidenceCap:            defaultConfidenceCap,
		BayesWeight:              defaultBayesWeight,
		MDPWeight:                defaultMDPWeight,
		CSPWeight:                defaultCSPWeight,
		JitterScale:              defaultJitterScale,
		MMRRelevanceWeight:       defaultMMRRelevanceWeight,
		MMRSimilarityWeight:      defaultMMRSimilarityWeight,
		SimilarityPriceWeight:    defaultSimilarityPriceWeight,
		SimilarityCategoryWeight: defaultSimilarityCategoryWeight,
		PriceNorm:                defaultPriceNorm,
	}
}
