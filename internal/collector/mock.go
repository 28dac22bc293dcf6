package collector

import "SignalSentry/internal/model"

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Contracts    []string
	Ranked       []string
	Series       map[string]*model.Series
	KlineErrs    map[string]error
	ContractsErr error
	RankedErr    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchContracts() ([]string, error) {
	if m.ContractsErr != nil {
		return nil, m.ContractsErr
	}
	return m.Contracts, nil
}

func (m *MockFetcher) FetchTopByVolume(allowed []string, topN int) ([]string, error) {
	if m.RankedErr != nil {
		return nil, m.RankedErr
	}
	if m.Ranked != nil {
		return m.Ranked, nil
	}
	if topN > 0 && len(allowed) > topN {
		return allowed[:topN], nil
	}
	return allowed, nil
}

func (m *MockFetcher) FetchKlines(symbol, _ string, _ int) (*model.Series, error) {
	if err, ok := m.KlineErrs[symbol]; ok {
		return nil, err
	}
	if s, ok := m.Series[symbol]; ok {
		return s, nil
	}
	return &model.Series{Symbol: symbol}, nil
}
