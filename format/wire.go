package format

import "github.com/thekitchencoder/jspec/match"

// outcomeDoc is the JSON/YAML wire shape of an EvaluationOutcome (§6).
type outcomeDoc struct {
	SpecificationID string     `json:"specificationId" yaml:"specificationId"`
	Results         []any      `json:"results" yaml:"results"`
	Summary         summaryDoc `json:"summary" yaml:"summary"`
}

type summaryDoc struct {
	Total           int  `json:"total" yaml:"total"`
	Matched         int  `json:"matched" yaml:"matched"`
	NotMatched      int  `json:"notMatched" yaml:"notMatched"`
	Undetermined    int  `json:"undetermined" yaml:"undetermined"`
	FullyDetermined bool `json:"fullyDetermined" yaml:"fullyDetermined"`
}

type queryResultDoc struct {
	Criterion    string   `json:"criterion" yaml:"criterion"`
	State        string   `json:"state" yaml:"state"`
	MissingPaths []string `json:"missingPaths" yaml:"missingPaths"`
	Reason       string   `json:"reason,omitempty" yaml:"reason,omitempty"`
}

type statisticsDoc struct {
	Matched      int `json:"matched" yaml:"matched"`
	NotMatched   int `json:"notMatched" yaml:"notMatched"`
	Undetermined int `json:"undetermined" yaml:"undetermined"`
}

type compositeResultDoc struct {
	Criterion    string        `json:"criterion" yaml:"criterion"`
	Junction     string        `json:"junction" yaml:"junction"`
	State        string        `json:"state" yaml:"state"`
	ChildResults []any         `json:"childResults" yaml:"childResults"`
	Statistics   statisticsDoc `json:"statistics" yaml:"statistics"`
	Reason       string        `json:"reason,omitempty" yaml:"reason,omitempty"`
}

type referenceResultDoc struct {
	Criterion string `json:"criterion" yaml:"criterion"`
	Ref       any    `json:"ref" yaml:"ref"`
}

func toOutcomeDoc(outcome *match.EvaluationOutcome) outcomeDoc {
	results := make([]any, 0, len(outcome.Criteria)+len(outcome.Groups))

	for _, r := range outcome.Criteria {
		results = append(results, toResultDoc(r))
	}

	for _, r := range outcome.Groups {
		results = append(results, toResultDoc(r))
	}

	return outcomeDoc{
		SpecificationID: outcome.SpecificationID,
		Results:         results,
		Summary: summaryDoc{
			Total:           outcome.Summary.Total,
			Matched:         outcome.Summary.Matched,
			NotMatched:      outcome.Summary.NotMatched,
			Undetermined:    outcome.Summary.Undetermined,
			FullyDetermined: outcome.Summary.FullyDetermined,
		},
	}
}

func toResultDoc(r match.Result) any {
	switch v := r.(type) {
	case *match.QueryResult:
		return queryResultDoc{
			Criterion:    v.ID,
			State:        v.Outcome.String(),
			MissingPaths: v.MissingPaths,
			Reason:       v.Reason(),
		}
	case *match.CompositeResult:
		children := make([]any, len(v.Children))
		for i, c := range v.Children {
			children[i] = toResultDoc(c)
		}

		return compositeResultDoc{
			Criterion:    v.ID,
			Junction:     v.JunctionOp.String(),
			State:        v.Outcome.String(),
			ChildResults: children,
			Statistics: statisticsDoc{
				Matched:      v.Stats.Matched,
				NotMatched:   v.Stats.NotMatched,
				Undetermined: v.Stats.Undetermined,
			},
			Reason: v.Reason(),
		}
	case *match.ReferenceResult:
		return referenceResultDoc{Criterion: v.ID, Ref: toResultDoc(v.Resolved)}
	default:
		return nil
	}
}
