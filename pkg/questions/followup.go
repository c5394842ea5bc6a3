package questions

// DropFollowups clears answers to followup questions whose triggering
// question was not answered with a triggering value. The followup's form
// fields are set to nil so a save overwrites previous answers. data is
// modified and returned.
func DropFollowups(questions []*Question, data Data) Data {
	for _, question := range questions {
		for _, target := range question.schema.FollowupTargets() {
			answer, _ := question.answer(data)
			if question.TriggersFollowup(target, answer) {
				continue
			}
			followup := findQuestion(questions, target)
			if followup == nil {
				data[target] = nil
				continue
			}
			for _, field := range followup.FormFields() {
				data[field] = nil
			}
		}
	}
	return data
}

// dropNestedFollowups removes untriggered followup answers from each item of
// a dynamic list. Item keys are the ids of the questions the list was
// generated from.
func dropNestedFollowups(templates []*Schema, items []Data) {
	for _, item := range items {
		for _, schema := range templates {
			for _, target := range schema.FollowupTargets() {
				if !intersects(item[schema.ID], schema.Followup[target]) {
					delete(item, target)
				}
			}
		}
	}
}

func findQuestion(questions []*Question, id string) *Question {
	for _, question := range questions {
		if found := question.GetQuestion(id); found != nil {
			return found
		}
	}
	return nil
}

// liveQuestions walks questions in declaration order and reports which are
// not hidden by an untriggered followup. Hiding a question hides its own
// followups too.
func liveQuestions(children []*Summary) map[string]bool {
	ignored := make(map[string]bool)
	live := make(map[string]bool, len(children))
	for _, child := range children {
		if ignored[child.ID()] {
			for _, target := range child.schema.FollowupTargets() {
				ignored[target] = true
			}
			continue
		}
		live[child.ID()] = true
		raw := child.RawValue()
		for _, target := range child.schema.FollowupTargets() {
			if !child.TriggersFollowup(target, raw) {
				ignored[target] = true
			}
		}
	}
	return live
}
