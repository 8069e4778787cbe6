package internal

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Session", func() {
	var (
		ctx          context.Context
		mockCtrl     *gomock.Controller
		mockListener *MockListener
		logs         *bytes.Buffer
		session      *Session
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockCtrl = gomock.NewController(GinkgoT())
		mockListener = NewMockListener(mockCtrl)
		logs = &bytes.Buffer{}
		logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
		session = NewSession(WithListener(mockListener), WithLogger(logger), WithSymbols("x"))
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should report every phase of a successful compilation", func() {
		gomock.InOrder(
			mockListener.EXPECT().PhaseCompleted(PhaseLexing, gomock.Any()),
			mockListener.EXPECT().PhaseCompleted(PhaseParsing, gomock.Any()),
			mockListener.EXPECT().PhaseCompleted(PhaseChecking, gomock.Any()),
			mockListener.EXPECT().PhaseCompleted(PhaseGenerating, gomock.Any()).
				Do(func(_ Phase, result *Result) {
					Expect(result.Instructions).To(HaveLen(12))
				}),
		)

		result, err := session.Compile(ctx, "if (x > 10) { y = 5; } else { y = 0; }")

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Lines()[0]).To(Equal("LOADI 10"))
		Expect(session.Symbols().Names()).To(Equal([]string{"x", "y"}))
		Expect(logs.String()).To(ContainSubstring("compilation succeeded"))
	})

	It("should keep the symbols for the next compilation", func() {
		mockListener.EXPECT().PhaseCompleted(gomock.Any(), gomock.Any()).Times(8)

		_, err := session.Compile(ctx, "if (x > 1) { y = 5; }")
		Expect(err).NotTo(HaveOccurred())
		_, err = session.Compile(ctx, "if (y == 5) { z = y; }")
		Expect(err).NotTo(HaveOccurred())

		Expect(session.Symbols().Names()).To(Equal([]string{"x", "y", "z"}))
	})

	It("should leave the symbols alone when a compilation fails", func() {
		gomock.InOrder(
			mockListener.EXPECT().PhaseCompleted(PhaseLexing, gomock.Any()),
			mockListener.EXPECT().PhaseCompleted(PhaseParsing, gomock.Any()),
			mockListener.EXPECT().CompilationFailed(PhaseChecking, gomock.Any()).
				Do(func(_ Phase, err error) {
					var semanticErr *SemanticError
					Expect(errors.As(err, &semanticErr)).To(BeTrue())
					Expect(semanticErr.Name).To(Equal("w"))
				}),
		)

		_, err := session.Compile(ctx, "if (x > 1) { y = 1; } else { z = w; }")

		Expect(err).To(HaveOccurred())
		Expect(session.Symbols()).To(Equal(SymbolTable{"x": IntType}))
		Expect(logs.String()).To(ContainSubstring("level=WARN"))
	})

	It("should report a lexical error before any phase completes", func() {
		mockListener.EXPECT().CompilationFailed(PhaseLexing, gomock.Any())

		_, err := session.Compile(ctx, "if (x > 1) { y = 1 ^ }")

		var lexicalErr *LexicalError
		Expect(errors.As(err, &lexicalErr)).To(BeTrue())
		Expect(lexicalErr.Char).To(Equal('^'))
	})

	It("should reject an empty source", func() {
		_, err := session.Compile(ctx, " \n\t")

		Expect(err).To(MatchError(ErrEmptySource))
		entries, err := session.History(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Status).To(Equal(StatusFailed))
		Expect(entries[0].Error).To(Equal("no code provided"))
	})

	It("should record every attempt in the history", func() {
		mockListener.EXPECT().PhaseCompleted(gomock.Any(), gomock.Any()).AnyTimes()
		mockListener.EXPECT().CompilationFailed(PhaseParsing, gomock.Any())

		_, err := session.Compile(ctx, "if (x > 1) { y = 1; }")
		Expect(err).NotTo(HaveOccurred())
		_, err = session.Compile(ctx, "if (x > 1) { y = 1 }")
		Expect(err).To(HaveOccurred())

		entries, err := session.History(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(2))
		Expect(entries[0].Status).To(Equal(StatusSuccess))
		Expect(entries[0].Instructions).To(Equal(10))
		Expect(entries[1].Status).To(Equal(StatusFailed))
		Expect(entries[1].Source).To(Equal("if (x > 1) { y = 1 }"))
		Expect(entries[1].Error).To(ContainSubstring("syntax error"))
		Expect(entries[0].ID).NotTo(Equal(entries[1].ID))
	})

	It("should define only valid identifiers", func() {
		accepted := session.Define("a", " b ", "1c", "", "d-e", "_f")

		Expect(accepted).To(Equal([]string{"a", "b", "_f"}))
		Expect(session.Symbols().Names()).To(Equal([]string{"_f", "a", "b", "x"}))

		session.Clear()
		Expect(session.Symbols()).To(BeEmpty())
	})

	It("should hand out a copy of the symbols", func() {
		symbols := session.Symbols()
		symbols.declare("y")

		Expect(session.Symbols()).To(Equal(SymbolTable{"x": IntType}))
	})
})
