package olim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/qpot/internal/analysis"
	"github.com/san-kum/qpot/internal/dynamo"
	"github.com/san-kum/qpot/internal/geom"
	"github.com/san-kum/qpot/internal/mesh"
	"github.com/san-kum/qpot/internal/metrics"
	"github.com/san-kum/qpot/internal/monitoring"
	"github.com/san-kum/qpot/internal/olim"
	"github.com/san-kum/qpot/internal/physics"
	"github.com/san-kum/qpot/internal/seed"
)

type heapChecker struct {
	s      *olim.Solver
	broken int
}

func (h *heapChecker) OnAccept(dynamo.Acceptance) {
	if !olim.HeapValid(h.s) {
		h.broken++
	}
}

func solveLinear(n, k int) (*olim.Result, *mesh.Grid) {
	field := physics.NewLinear()
	grid, err := mesh.New(n, n, -1, 1, -1, 1)
	Expect(err).NotTo(HaveOccurred())

	opts := olim.DefaultOptions()
	opts.K = k
	s, err := olim.New(grid, field, opts)
	Expect(err).NotTo(HaveOccurred())
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	init, err := seed.Linearized(field, field.Attractor())
	Expect(err).NotTo(HaveOccurred())
	set, err := seed.FromPoint(grid, field.Attractor(), init)
	Expect(err).NotTo(HaveOccurred())
	Expect(s.Seed(set)).To(Succeed())

	res, err := s.Run(context.Background())
	Expect(err).NotTo(HaveOccurred())
	return res, grid
}

var _ = BeforeSuite(func() {
	monitoring.SetLogger(GinkgoWriter.Printf)
})

var _ = Describe("Solver", func() {
	Context("seeded at a single point", func() {
		var (
			s    *olim.Solver
			grid *mesh.Grid
			set  seed.Set
		)

		BeforeEach(func() {
			var err error
			grid, err = mesh.New(65, 65, -1, 1, -1, 1)
			Expect(err).NotTo(HaveOccurred())
			s, err = olim.New(grid, physics.NewLinear(), olim.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			set, err = seed.FromPoint(grid, geom.Vec{}, seed.Zero)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Seed(set)).To(Succeed())
		})

		It("makes exactly the four cell corners Considered", func() {
			Expect(set).To(HaveLen(4))
			considered := 0
			for idx := 0; idx < grid.Size(); idx++ {
				if s.Status(idx) == olim.Considered {
					considered++
					Expect(set.Indices()).To(ContainElement(idx))
				}
			}
			Expect(considered).To(Equal(4))
			Expect(olim.HeapValid(s)).To(BeTrue())
		})

		It("records seed provenance and keeps the heap consistent while running", func() {
			checker := &heapChecker{s: s}
			s.AddObserver(checker)

			res, err := s.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(checker.broken).To(BeZero())

			prov := res.Provenance()
			for _, idx := range set.Indices() {
				Expect(prov[idx].Kind).To(Equal(olim.Seed))
			}
			Expect(res.Summary.Termination).To(Equal(olim.BoundaryReached))
		})
	})

	Context("on the linear field", func() {
		var (
			coarse, fine         *olim.Result
			coarseGrid, fineGrid *mesh.Grid
			exact                = physics.NewLinear().Potential
		)

		BeforeEach(func() {
			if coarse == nil {
				coarse, coarseGrid = solveLinear(65, 8)
				fine, fineGrid = solveLinear(129, 12)
			}
		})

		It("stays close to U = 2x^2 + y^2 at 65x65", func() {
			rep := analysis.Compare(coarseGrid, coarse.Values(), exact)
			Expect(rep.Count).To(BeNumerically(">", 1000))
			Expect(rep.ErrMax).To(BeNumerically("<", 0.05))
		})

		It("reduces the error when the resolution doubles", func() {
			rc := analysis.Compare(coarseGrid, coarse.Values(), exact)
			rf := analysis.Compare(fineGrid, fine.Values(), exact)
			Expect(rf.ErrMax).To(BeNumerically("<", rc.ErrMax))
			Expect(rf.ERMS).To(BeNumerically("<", rc.ERMS))
		})

		It("accepts values in order up to discretisation error", func() {
			Expect(coarse.Metrics).To(HaveKey("max_drop"))
			Expect(coarse.Metrics["max_drop"]).To(BeNumerically("<", 0.05))
			Expect(fine.Metrics["max_drop"]).To(BeNumerically("<", 0.05))
		})

		It("stops at the boundary margin with every accepted value finite", func() {
			Expect(coarse.Summary.Termination).To(Equal(olim.BoundaryReached))
			i, j := coarseGrid.Cell(coarse.Summary.Last)
			Expect(coarseGrid.NearBoundary(i, j, olim.DefaultMargin)).To(BeTrue())

			values, status := coarse.Values(), coarse.Status()
			for idx, v := range values {
				if status[idx].Accepted() {
					Expect(math.IsNaN(v)).To(BeFalse())
					Expect(v).To(BeNumerically(">=", 0))
					Expect(v).To(BeNumerically("<", olim.Infinity))
				} else {
					Expect(v).To(Equal(olim.Infinity))
				}
			}
		})

		It("uses two-point updates for part of the front", func() {
			Expect(coarse.Summary.TwoPointUpdates).To(BeNumerically(">", 0))
			Expect(coarse.Metrics["two_point_share"]).To(BeNumerically(">", 0))
			Expect(coarse.Metrics["accepted"]).To(BeNumerically("==", coarse.Summary.Accepted))
		})

		It("links every non-seed accepted point to accepted predecessors", func() {
			status := coarse.Status()
			for idx, p := range coarse.Provenance() {
				if !status[idx].Accepted() {
					continue
				}
				switch p.Kind {
				case olim.OnePoint:
					Expect(status[p.Ind0].Accepted()).To(BeTrue())
				case olim.TwoPoint:
					Expect(status[p.Ind0].Accepted()).To(BeTrue())
					Expect(status[p.Ind1].Accepted()).To(BeTrue())
					Expect(p.S).To(BeNumerically(">=", -1e-6))
					Expect(p.S).To(BeNumerically("<=", 1+1e-6))
				case olim.Seed:
				default:
					Fail("accepted point without provenance")
				}
			}
		})
	})

	Context("around the unit cycle", func() {
		It("approximates U = (r^2-1)^2/2 from a curve seed", func() {
			field := physics.NewCycle()
			grid, err := mesh.New(81, 81, -2, 2, -2, 2)
			Expect(err).NotTo(HaveOccurred())

			opts := olim.DefaultOptions()
			opts.K = 8
			s, err := olim.New(grid, field, opts)
			Expect(err).NotTo(HaveOccurred())

			curve := seed.Circle(400, 1)
			set, err := seed.FromCurve(grid, curve, seed.CurveDistance(field, curve))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Seed(set)).To(Succeed())

			res, err := s.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			rep := analysis.Compare(grid, res.Values(), field.Potential)
			Expect(rep.Count).To(BeNumerically(">", len(set)))
			Expect(rep.ERMS).To(BeNumerically("<", 0.05))
			Expect(rep.ErrMax).To(BeNumerically("<", 0.2))
		})
	})
})
