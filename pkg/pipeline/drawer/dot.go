package drawer

import (
	"io"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1"

	"github.com/askiada/go-covidsim/internal/store"
	"github.com/askiada/go-covidsim/pkg/pipeline/measure"
)

const labelAttribute = "xlabel"

// DOTDrawer writes the pipeline graph in the Graphviz DOT language.
type DOTDrawer struct {
	graph graph.Graph[string, string]
	steps *store.StepStore
	w     io.Writer
}

// NewDOTDrawer creates a drawer writing to w.
func NewDOTDrawer(w io.Writer) *DOTDrawer {
	steps := store.NewStepStore()

	return &DOTDrawer{
		graph: graph.NewWithStore(graph.StringHash, graph.Store[string, string](steps), graph.Directed()),
		steps: steps,
		w:     w,
	}
}

// AddStep adds a step to the graph.
func (d *DOTDrawer) AddStep(name string) error {
	err := d.graph.AddVertex(name, graph.VertexAttribute("shape", "box"))
	if err != nil {
		return errors.Wrapf(err, "unable to add vertex %s", name)
	}

	return nil
}

// AddLink adds a link between parent and child steps.
func (d *DOTDrawer) AddLink(parentName, childName string) error {
	err := d.graph.AddEdge(parentName, childName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childName)
	}

	return nil
}

// SetTotalTime labels a step with the time elapsed since startTime.
func (d *DOTDrawer) SetTotalTime(stepName string, startTime time.Time) error {
	err := d.steps.SetVertexAttribute(stepName, labelAttribute, time.Since(startTime).String())
	if err != nil {
		return errors.Wrapf(err, "unable to label vertex %s", stepName)
	}

	return nil
}

const maxRGB = 240

// AddMeasure labels every step with its average duration and every link with its average
// transport time. Links go from blue for the fastest to red for the slowest.
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	var minValue, maxValue time.Duration
	first := true
	for _, mt := range msr.AllMetrics() {
		for _, elapsed := range mt.AVGTransportDuration() {
			if elapsed == 0 {
				continue
			}
			if first || elapsed < minValue {
				minValue = elapsed
			}
			if first || elapsed > maxValue {
				maxValue = elapsed
			}
			first = false
		}
	}

	for name, mt := range msr.AllMetrics() {
		var labels []string
		if avg := mt.AVGDuration(); avg != 0 {
			labels = append(labels, avg.String())
		}
		if total := mt.GetTotalDuration(); total > 0 {
			labels = append(labels, "end: "+total.String())
		}
		if len(labels) > 0 {
			err := d.steps.SetVertexAttribute(name, labelAttribute, strings.Join(labels, ", "))
			if err != nil {
				return errors.Wrapf(err, "unable to label vertex %s", name)
			}
		}

		for inputStep, elapsed := range mt.AVGTransportDuration() {
			if elapsed == 0 {
				continue
			}
			colour, err := transportColour(elapsed, minValue, maxValue)
			if err != nil {
				return err
			}
			err = d.graph.UpdateEdge(inputStep, name,
				graph.EdgeAttribute("label", elapsed.String()),
				graph.EdgeAttribute("fontcolor", "blue"),
				graph.EdgeAttribute("color", colour),
			)
			if err != nil {
				return errors.Wrapf(err, "unable to update edge from %s to %s", inputStep, name)
			}
		}
	}

	return nil
}

func transportColour(elapsed, minValue, maxValue time.Duration) (string, error) {
	fraction := 1.0
	if maxValue > minValue {
		fraction = float64(elapsed-minValue) / float64(maxValue-minValue)
	}
	red := maxRGB * fraction
	blue := maxRGB - red

	rgb, err := colors.RGB(uint8(red), 0, uint8(blue))
	if err != nil {
		return "", errors.Wrap(err, "unable to get colour")
	}

	return rgb.ToHEX().String(), nil
}

// Draw writes the graph. Steps and links are sorted by name.
func (d *DOTDrawer) Draw() error {
	desc, err := d.describe()
	if err != nil {
		return err
	}

	err = dotTemplate.Execute(d.w, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var dotTemplate = template.Must(template.New("dot").Funcs(template.FuncMap{"quote": strconv.Quote}).Parse(`strict digraph {
{{- range .Statements}}
	{{quote .Source}}{{if .Target}} -> {{quote .Target}}{{end}} [{{range $i, $a := .Attributes}}{{if $i}}, {{end}}{{$a.Key}}={{quote $a.Value}}{{end}}];
{{- end}}
}
`))

type attribute struct {
	Key   string
	Value string
}

type statement struct {
	Source     string
	Target     string
	Attributes []attribute
}

type description struct {
	Statements []statement
}

func (d *DOTDrawer) describe() (description, error) {
	desc := description{}

	vertices, err := d.steps.ListVertices()
	if err != nil {
		return desc, errors.Wrap(err, "unable to list vertices")
	}
	edges, err := d.steps.ListEdges()
	if err != nil {
		return desc, errors.Wrap(err, "unable to list edges")
	}

	for _, vertex := range vertices {
		_, properties, err := d.graph.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrapf(err, "unable to get vertex %s", vertex)
		}
		attributes := properties.Attributes
		if xlabel, ok := attributes[labelAttribute]; ok {
			attributes["label"] = vertex + "\n" + xlabel
			delete(attributes, labelAttribute)
		}
		desc.Statements = append(desc.Statements, statement{Source: vertex, Attributes: sortedAttributes(attributes)})

		for _, edge := range edges {
			if edge.Source != vertex {
				continue
			}
			desc.Statements = append(desc.Statements, statement{
				Source:     vertex,
				Target:     edge.Target,
				Attributes: sortedAttributes(edge.Properties.Attributes),
			})
		}
	}

	return desc, nil
}

func sortedAttributes(m map[string]string) []attribute {
	attributes := make([]attribute, 0, len(m))
	for k, v := range m {
		attributes = append(attributes, attribute{Key: k, Value: v})
	}
	sort.Slice(attributes, func(i, j int) bool {
		return attributes[i].Key < attributes[j].Key
	})

	return attributes
}

var _ Drawer = (*DOTDrawer)(nil)
