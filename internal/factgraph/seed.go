package factgraph

// Seed returns the compiled-in baseball fact base.
func Seed() *Store {
	b := NewBuilder()
	for _, f := range seedFacts {
		b.AddFact(f.Subject, f.Predicate, f.Object, f.Attrs)
	}
	return b.Build()
}

const (
	gs2OutsRunner1   = "GameState_2outs_Runner1"
	gs1OutRunner2    = "GameState_1out_Runner2"
	gs0OutsRunners12 = "GameState_0outs_Runners12"
	gs2OutsRunner3   = "GameState_2outs_Runner3"
)

var seedFacts = []Fact{
	{Subject: "Shortstop", Predicate: Covers, Object: "Second Base"},

	// Two outs, runner on first.
	{Subject: "Runner on 1st", Predicate: IsPartOf, Object: gs2OutsRunner1},
	{Subject: "2 Outs", Predicate: IsPartOf, Object: gs2OutsRunner1},
	{Subject: gs2OutsRunner1, Predicate: Triggers, Object: "Grounder to SS"},
	{Subject: "Grounder to SS", Predicate: Suggests, Object: "Throw to 2nd"},
	{Subject: "Throw to 2nd", Predicate: RequiresUnderstandingOf, Object: "Force Out"},
	{Subject: "Force Out", Predicate: Requires, Object: "Runner behind Batter"},
	{Subject: "Throw to 2nd", Predicate: LeadsTo, Object: "Out at 2nd"},
	{Subject: "Shortstop", Predicate: HasResponsibilityIn, Object: gs2OutsRunner1},

	// One out, runner on second.
	{Subject: "Third Base", Predicate: HasResponsibilityIn, Object: gs1OutRunner2},
	{Subject: "Runner on 2nd", Predicate: IsPartOf, Object: gs1OutRunner2},
	{Subject: "1 Out", Predicate: IsPartOf, Object: gs1OutRunner2},
	{Subject: gs1OutRunner2, Predicate: Triggers, Object: "Grounder to 3B"},
	{Subject: "Grounder to 3B", Predicate: Suggests, Object: "Throw to 1st"},
	{Subject: "Throw to 1st", Predicate: LeadsTo, Object: "Out at 1st"},
	{Subject: "Throw to 3rd", Predicate: RequiresUnderstandingOf, Object: "Runner Speed Judgment"},
	{Subject: "Throw to 3rd", Predicate: LeadsTo, Object: "Risky Out at 3rd"},

	// No outs, runners on first and second.
	{Subject: "Shortstop", Predicate: HasResponsibilityIn, Object: gs0OutsRunners12},
	{Subject: "Second Baseman", Predicate: HasResponsibilityIn, Object: gs0OutsRunners12},
	{Subject: "Runners on 1st and 2nd", Predicate: IsPartOf, Object: gs0OutsRunners12},
	{Subject: "0 Outs", Predicate: IsPartOf, Object: gs0OutsRunners12},
	{Subject: gs0OutsRunners12, Predicate: Triggers, Object: "Grounder to SS"},
	{Subject: "Grounder to SS", Predicate: Suggests, Object: "Throw to 2nd"},
	{Subject: "Throw to 2nd", Predicate: LeadsTo, Object: "Out at 2nd"},
	{Subject: "Throw to 1st", Predicate: LeadsTo, Object: "Double Play"},
	{Subject: "Double Play", Predicate: Requires, Object: "Clean Fielding"},
	{Subject: "Double Play", Predicate: RequiresUnderstandingOf, Object: "Force Out at Multiple Bases"},

	// Two outs, runner on third.
	{Subject: "First Baseman", Predicate: HasResponsibilityIn, Object: gs2OutsRunner3},
	{Subject: "Runner on 3rd", Predicate: IsPartOf, Object: gs2OutsRunner3},
	{Subject: "2 Outs", Predicate: IsPartOf, Object: gs2OutsRunner3},
	{Subject: gs2OutsRunner3, Predicate: Triggers, Object: "Grounder to 1B"},
	{Subject: "Grounder to 1B", Predicate: Suggests, Object: "Step on 1st"},
	{Subject: "Step on 1st", Predicate: LeadsTo, Object: "End of Inning"},
	{Subject: "Throw Home", Predicate: IsNotRecommended, Object: gs2OutsRunner3},
	{Subject: "Throw Home", Predicate: FailsToResultIn, Object: "Force Out"},
}
