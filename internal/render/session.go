package render

import (
	"strings"

	"github.com/oakwood-commons/vardump/internal/theme"
	"github.com/oakwood-commons/vardump/internal/value"
)

// traversal is the state of one root value's walk.
type traversal struct {
	depth int
	// path maps a nesting depth to the object being rendered there.
	path map[int]value.Identity
}

func (t *traversal) onPath(id value.Identity) bool {
	for _, seen := range t.path {
		if seen == id {
			return true
		}
	}
	return false
}

// session is the state of one Render call. Display tokens live here so an
// object shared by several roots shows the same token.
type session struct {
	r      *Renderer
	th     theme.Theme
	out    *strings.Builder
	tokens map[value.Identity]int
	next   int
	state  traversal
}

func (s *session) reset() {
	s.state = traversal{path: make(map[int]value.Identity)}
}

func (s *session) emit(fragments ...string) {
	for _, f := range fragments {
		s.out.WriteString(f)
	}
}

// token returns the display token for id, assigning one on first sight.
// Objects without identity get a fresh token every time.
func (s *session) token(id value.Identity) int {
	if !id.Valid() {
		s.next++
		return s.next
	}
	if t, ok := s.tokens[id]; ok {
		return t
	}
	s.next++
	s.tokens[id] = s.next
	return s.next
}

func (s *session) lead(indent string) string {
	if indent == "" {
		return ""
	}
	return s.th.EOL + indent
}

func (s *session) value(v any, indent string) {
	cv := value.Classify(v)
	th := s.th
	switch cv.Kind {
	case value.Bool, value.Int, value.Float, value.String:
		s.emit(th.Scalar(cv.Kind, cv.Text, cv.Len), th.EOL)
	case value.Null:
		s.emit(th.Null(), th.EOL)
	case value.Resource:
		s.emit(th.Resource(cv.HandleID, cv.HandleType), th.EOL)
	case value.Sequence:
		s.sequence(cv, indent)
	case value.Object:
		s.object(cv.Object, indent)
	default:
		s.emit(th.Other(cv.Text), th.EOL)
	}
}

func (s *session) sequence(cv value.Value, indent string) {
	th := s.th
	s.emit(th.ArrayHeader(s.lead(indent), cv.Len), th.EOL)
	if cv.Len == 0 {
		s.emit(th.EmptyArray(indent), th.EOL)
		return
	}
	if s.state.depth >= s.r.maxDepth {
		s.emit(th.Truncation(indent), th.EOL)
		return
	}
	s.state.depth++
	for k, item := range cv.Items {
		s.emit(th.ArrayKey(indent, k))
		s.value(item, indent+th.Indent)
	}
	s.state.depth--
}

func (s *session) object(obj *value.ObjectInfo, indent string) {
	th := s.th
	if obj.Identity.Valid() && s.state.onPath(obj.Identity) {
		s.emit(th.Recursion(s.lead(indent), obj.TypeName, s.token(obj.Identity)), th.EOL)
		return
	}
	s.emit(th.ObjectHeader(s.lead(indent), obj.TypeName, s.token(obj.Identity)), th.EOL)
	if s.state.depth >= s.r.maxDepth {
		s.emit(th.Truncation(indent), th.EOL)
		return
	}
	level := s.state.depth
	if obj.Identity.Valid() {
		s.state.path[level] = obj.Identity
	}
	s.state.depth++
	attrs, err := obj.Attributes()
	if err != nil {
		s.r.log.Error(err, "attribute enumeration incomplete", "type", obj.TypeName, "attributes", len(attrs))
	}
	for _, a := range attrs {
		s.emit(th.ObjectKey(indent, a.Label(), a.Name))
		s.value(a.Value, indent+th.Indent)
	}
	s.state.depth--
	delete(s.state.path, level)
}
