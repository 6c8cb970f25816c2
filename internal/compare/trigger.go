package compare

import "github.com/schemadelta/schemadelta/schema"

func (d *tableDiff) compareTriggers(w workingTable) {
	for _, tr := range d.compare.Triggers {
		original := d.base.FindTrigger(tr.Name)
		switch {
		case original == nil:
			d.emit(schema.ObjectTypeTrigger, ResultTypeAdd, tr.Name, d.writer.AddTrigger(w.table(), tr))
		case triggerChanged(original, tr):
			d.emit(schema.ObjectTypeTrigger, ResultTypeChange, tr.Name,
				joinStatements(d.writer.DropTrigger(original), d.writer.AddTrigger(w.table(), tr)))
		}
	}

	for _, tr := range d.base.Triggers {
		if d.compare.FindTrigger(tr.Name) != nil {
			continue
		}
		d.emit(schema.ObjectTypeTrigger, ResultTypeDelete, tr.Name, d.writer.DropTrigger(tr))
	}
}

func triggerChanged(a, b *schema.Trigger) bool {
	return a.TriggerBody != b.TriggerBody ||
		a.TriggerType != b.TriggerType ||
		a.TriggerEvent != b.TriggerEvent
}
