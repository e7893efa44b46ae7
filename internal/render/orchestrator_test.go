package render_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wavelines/internal/compute"
	"github.com/san-kum/wavelines/internal/displace"
	"github.com/san-kum/wavelines/internal/geom"
	"github.com/san-kum/wavelines/internal/noise"
	"github.com/san-kum/wavelines/internal/pacer"
	"github.com/san-kum/wavelines/internal/render"
)

const lift = float32(0.25)

func flatWave() displace.Wave {
	return displace.Wave{
		Field:  noise.FieldFunc(func(x, y float32) float32 { return lift }),
		Factor: displace.DefaultFactor,
	}
}

func ops(calls []render.Call) []render.Op {
	out := make([]render.Op, len(calls))
	for i, c := range calls {
		out[i] = c.Op
	}
	return out
}

var _ = Describe("Orchestrator", func() {
	var (
		rec   *render.Recorder
		scene geom.Scene
		orch  *render.Orchestrator
		state pacer.State
	)

	BeforeEach(func() {
		rec = render.NewRecorder(flatWave())
		rec.Sets().UseShader(compute.NewCPUBackend())
		scene = geom.Generate(geom.Layout{Padding: 0.1, Segments: 4})
		var err error
		orch, err = render.New(rec, scene, render.DefaultStyle())
		Expect(err).NotTo(HaveOccurred())
		state = pacer.NewState()
		state.T = 0.42
	})

	Describe("New", func() {
		It("registers every set once", func() {
			Expect(ops(rec.Calls)).To(Equal([]render.Op{render.OpRegister, render.OpRegister, render.OpRegister}))
			names := []string{rec.Calls[0].Name, rec.Calls[1].Name, rec.Calls[2].Name}
			Expect(names).To(ConsistOf("lines", "center", "border"))
		})

		It("fails with ErrRegister when upload fails", func() {
			bad := render.NewRecorder(nil)
			bad.Fail = map[render.Op]error{render.OpRegister: errors.New("out of buffers")}
			_, err := render.New(bad, scene, render.DefaultStyle())
			Expect(err).To(MatchError(render.ErrRegister))
			Expect(err.Error()).To(ContainSubstring("out of buffers"))
		})
	})

	Describe("Frame", func() {
		BeforeEach(func() {
			rec.Reset()
			Expect(orch.Frame(&state)).To(Succeed())
		})

		It("clears, draws three times and presents", func() {
			Expect(ops(rec.Calls)).To(Equal([]render.Op{
				render.OpClear, render.OpDraw, render.OpDraw, render.OpDraw, render.OpPresent,
			}))
			Expect(rec.Calls[0].Color).To(Equal(render.Black))
			Expect(rec.Presented).To(Equal(1))
			Expect(orch.Frames()).To(BeEquivalentTo(1))
		})

		It("draws the lines narrow without emphasis", func() {
			d := rec.Draws()[0]
			Expect(d.Name).To(Equal("lines"))
			Expect(d.Request.Topology).To(Equal(geom.Segments))
			Expect(d.Request.StrokeWidth).To(Equal(render.DefaultLineWidth))
			Expect(d.Request.Uniforms).To(Equal(displace.Uniforms{T: 0.42, Emphasis: false}))
			Expect(d.Request.Shading).To(Equal(render.Displaced))
			Expect(d.Color).To(Equal(render.White))
		})

		It("draws the center line wide with emphasis", func() {
			d := rec.Draws()[1]
			Expect(d.Name).To(Equal("center"))
			Expect(d.Request.Topology).To(Equal(geom.LineStrip))
			Expect(d.Request.StrokeWidth).To(Equal(render.DefaultCenterWidth))
			Expect(d.Request.Uniforms).To(Equal(displace.Uniforms{T: 0.42, Emphasis: true}))
			Expect(d.Color).To(Equal(render.DarkRed))
		})

		It("draws the border static and white", func() {
			d := rec.Draws()[2]
			Expect(d.Name).To(Equal("border"))
			Expect(d.Request.Topology).To(Equal(geom.LineLoop))
			Expect(d.Request.Shading).To(Equal(render.Static))
			Expect(d.Request.StrokeWidth).To(Equal(render.DefaultLineWidth))
			Expect(d.Color).To(Equal(render.White))
			Expect(d.Vertices).To(Equal(scene.Border.Vertices()))
		})

		It("moves only odd line vertices and every center vertex", func() {
			lines := rec.Draws()[0].Vertices
			stored := scene.Lines.Vertices()
			Expect(lines).To(HaveLen(len(stored)))
			for i := range stored {
				want := stored[i]
				if i%2 == 1 {
					want.Y += lift
				}
				Expect(lines[i]).To(Equal(want), "vertex %d", i)
			}

			center := rec.Draws()[1].Vertices
			for i, v := range scene.Center.Vertices() {
				Expect(center[i]).To(Equal(geom.Vertex{X: v.X, Y: v.Y + lift}))
			}
		})

		It("leaves emphasis raised for the next frame", func() {
			Expect(state.Emphasis).To(BeTrue())
		})

		It("keeps the frame for replay", func() {
			last := rec.LastFrame()
			Expect(ops(last)).To(Equal([]render.Op{render.OpClear, render.OpDraw, render.OpDraw, render.OpDraw}))
			Expect(last[3].Edges()).To(HaveLen(4))
		})

		It("never mutates stored geometry", func() {
			before := scene.Lines.Vertices()
			Expect(orch.Frame(&state)).To(Succeed())
			Expect(orch.Scene().Lines.Vertices()).To(Equal(before))
		})
	})

	Describe("SetStyle", func() {
		It("applies from the next frame", func() {
			orch.SetStyle(render.Style{CenterWidth: 9, LineWidth: 2})
			rec.Reset()
			Expect(orch.Frame(&state)).To(Succeed())
			draws := rec.Draws()
			Expect(draws[0].Request.StrokeWidth).To(BeEquivalentTo(2))
			Expect(draws[1].Request.StrokeWidth).To(BeEquivalentTo(9))
			Expect(draws[2].Request.StrokeWidth).To(BeEquivalentTo(2))
		})
	})

	Describe("failures", func() {
		It("stops the frame at a failed draw", func() {
			rec.Reset()
			rec.Fail = map[render.Op]error{render.OpDraw: errors.New("lost context")}
			err := orch.Frame(&state)
			Expect(err).To(MatchError(render.ErrDraw))

			var be *render.BackendError
			Expect(errors.As(err, &be)).To(BeTrue())
			Expect(be.Backend).To(Equal("recorder"))
			Expect(be.Op).To(Equal("draw"))
			Expect(rec.Presented).To(BeZero())
		})

		It("reports a failed present", func() {
			rec.Fail = map[render.Op]error{render.OpPresent: errors.New("swap failed")}
			Expect(orch.Frame(&state)).To(MatchError(render.ErrPresent))
		})

		It("rejects unknown handles", func() {
			n := render.NewNull(nil)
			err := n.Draw(render.DrawRequest{Handle: 7})
			Expect(err).To(MatchError(render.ErrUnknownHandle))
		})
	})

	Describe("driven by the pacer", func() {
		It("renders one frame per tick with the advanced clock", func() {
			rec.Reset()
			p := pacer.New(pacer.WithClock(pacer.NewFakeClock(epoch)))
			Expect(p.Run(context.Background(), pacer.Ticks(3), orch.Frame)).To(Succeed())
			Expect(rec.Presented).To(Equal(3))

			draws := rec.Draws()
			Expect(draws).To(HaveLen(9))
			for i, want := range []float32{0.01, 0.02, 0.03} {
				Expect(draws[3*i].Request.Uniforms.T).To(BeNumerically("~", want, 1e-6))
				Expect(draws[3*i].Request.Uniforms.Emphasis).To(BeFalse())
				Expect(draws[3*i+1].Request.Uniforms.Emphasis).To(BeTrue())
			}
		})
	})

	Describe("shading stages", func() {
		It("produce identical frames", func() {
			wave := displace.NewWave()
			frame := func(b compute.Backend) []render.Call {
				r := render.NewRecorder(wave)
				r.Sets().UseShader(b)
				o, err := render.New(r, geom.Generate(geom.DefaultLayout()), render.DefaultStyle())
				Expect(err).NotTo(HaveOccurred())
				s := pacer.NewState()
				s.T = 1.7
				Expect(o.Frame(&s)).To(Succeed())
				return r.Draws()
			}
			Expect(frame(compute.NewMemoBackend())).To(Equal(frame(compute.NewCPUBackend())))
		})
	})
})

var _ = Describe("FragmentColor", func() {
	It("is dark red with emphasis and white otherwise", func() {
		Expect(render.FragmentColor(true)).To(Equal(render.DarkRed))
		Expect(render.FragmentColor(false)).To(Equal(render.White))
	})
})

var _ = Describe("Null", func() {
	It("accepts a full frame", func() {
		n := render.NewNull(nil)
		o, err := render.New(n, geom.Generate(geom.DefaultLayout()), render.DefaultStyle())
		Expect(err).NotTo(HaveOccurred())
		s := pacer.NewState()
		Expect(o.Frame(&s)).To(Succeed())
		Expect(n.Sets().Len()).To(Equal(3))
	})
})

var _ = Describe("Restyling", func() {
	It("applies the newest pending style before drawing", func() {
		rec := render.NewRecorder(nil)
		orch, err := render.New(rec, geom.Generate(geom.DefaultLayout()), render.DefaultStyle())
		Expect(err).NotTo(HaveOccurred())

		styles := make(chan render.Style, 2)
		styles <- render.Style{CenterWidth: 2, LineWidth: 2}
		styles <- render.Style{CenterWidth: 7, LineWidth: 3}
		frame := orch.Restyling(styles)

		s := pacer.NewState()
		Expect(frame(&s)).To(Succeed())
		Expect(orch.Style()).To(Equal(render.Style{CenterWidth: 7, LineWidth: 3}))
		Expect(rec.Draws()[1].Request.StrokeWidth).To(BeEquivalentTo(7))
	})

	It("draws with the current style when nothing is pending", func() {
		rec := render.NewRecorder(nil)
		orch, err := render.New(rec, geom.Generate(geom.DefaultLayout()), render.DefaultStyle())
		Expect(err).NotTo(HaveOccurred())
		s := pacer.NewState()
		Expect(orch.Restyling(nil)(&s)).To(Succeed())
		Expect(orch.Style()).To(Equal(render.DefaultStyle()))
	})
})
