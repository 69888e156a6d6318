package format

type numberingMode int

const (
	numberingUndefined numberingMode = iota
	numberingImplicit
	numberingExplicit
)

// numbering tracks the field numbering mode of one Format call.
type numbering struct {
	mode numberingMode
	next int
}

// assign returns the path to resolve for f. Implicit fields take the next
// positional index. Paths not starting with an index read from argument 0.
func (n *numbering) assign(f field) ([]segment, error) {
	if f.implicit {
		if n.mode == numberingExplicit {
			return nil, newValueError(ErrNumberingConflict,
				"cannot switch from explicit to implicit numbering")
		}
		n.mode = numberingImplicit
		path := []segment{indexSegment(n.next)}
		n.next++
		return path, nil
	}

	if n.mode == numberingImplicit {
		return nil, newValueError(ErrNumberingConflict,
			"cannot switch from implicit to explicit numbering")
	}
	n.mode = numberingExplicit

	if f.path[0].isIndex {
		return f.path, nil
	}
	path := make([]segment, 0, len(f.path)+1)
	path = append(path, indexSegment(0))
	return append(path, f.path...), nil
}
