package modgraph

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/cucumber/godog"
)

// countingConstructors builds a *component for every constructor name and
// counts the calls.
type countingConstructors struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *countingConstructors) Lookup(name string) (Constructor, bool) {
	return func(deps ...any) (any, error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.counts[name]++
		return &component{id: Identity(name), deps: deps}, nil
	}, true
}

// GraphResolutionBDDTestContext holds the state of one graph resolution scenario.
type GraphResolutionBDDTestContext struct {
	manifest     Manifest
	constructors *countingConstructors
	app          *Application
	buildErr     error
}

func (ctx *GraphResolutionBDDTestContext) reset() {
	ctx.manifest = Manifest{}
	ctx.constructors = &countingConstructors{counts: make(map[string]int)}
	ctx.app = nil
	ctx.buildErr = nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func splitIdentities(s string) []Identity {
	parts := splitList(s)
	out := make([]Identity, len(parts))
	for i, p := range parts {
		out[i] = Identity(p)
	}
	return out
}

func (ctx *GraphResolutionBDDTestContext) module(name string) (*ModuleManifest, error) {
	for i := range ctx.manifest.Modules {
		if ctx.manifest.Modules[i].Name == name {
			return &ctx.manifest.Modules[i], nil
		}
	}
	return nil, fmt.Errorf("module %q not declared in scenario", name)
}

func (ctx *GraphResolutionBDDTestContext) aModuleWithProviders(name string, table *godog.Table) error {
	mm := ModuleManifest{Name: name}
	if len(table.Rows) > 0 {
		header := table.Rows[0].Cells
		for _, row := range table.Rows[1:] {
			var pm ProviderManifest
			for i, cell := range row.Cells {
				switch header[i].Value {
				case "identity":
					pm.Identity = Identity(cell.Value)
				case "dependencies":
					pm.Dependencies = splitIdentities(cell.Value)
				case "scope":
					pm.Scope = Scope(cell.Value)
				}
			}
			mm.Providers = append(mm.Providers, pm)
		}
	}
	ctx.manifest.Modules = append(ctx.manifest.Modules, mm)
	return nil
}

func (ctx *GraphResolutionBDDTestContext) moduleImports(name, imports string) error {
	mm, err := ctx.module(name)
	if err != nil {
		return err
	}
	mm.Imports = append(mm.Imports, splitList(imports)...)
	return nil
}

func (ctx *GraphResolutionBDDTestContext) moduleExports(name, exports string) error {
	mm, err := ctx.module(name)
	if err != nil {
		return err
	}
	mm.Exports = append(mm.Exports, splitIdentities(exports)...)
	return nil
}

func (ctx *GraphResolutionBDDTestContext) moduleIsGlobal(name string) error {
	mm, err := ctx.module(name)
	if err != nil {
		return err
	}
	mm.Global = true
	return nil
}

func (ctx *GraphResolutionBDDTestContext) theApplicationIsBuiltWithRoot(root string) error {
	ctx.manifest.Root = root
	desc, err := ctx.manifest.Compile(ctx.constructors)
	if err != nil {
		return fmt.Errorf("failed to compile scenario graph: %w", err)
	}
	ctx.app, err = NewApplication(desc)
	if err != nil {
		return err
	}
	_, ctx.buildErr = ctx.app.Container()
	return nil
}

func (ctx *GraphResolutionBDDTestContext) theBuildShouldSucceed() error {
	if ctx.buildErr != nil {
		return fmt.Errorf("expected build to succeed, got: %w", ctx.buildErr)
	}
	return nil
}

var bddErrorKinds = map[string]error{
	"cyclic dependency":  ErrCyclicDependency,
	"ambiguous provider": ErrAmbiguousProvider,
	"missing dependency": ErrMissingDependency,
	"unknown provider":   ErrUnknownProvider,
	"duplicate provider": ErrDuplicateProvider,
}

func expectErrorKind(err error, kind string) error {
	want, ok := bddErrorKinds[kind]
	if !ok {
		return fmt.Errorf("unknown error kind %q", kind)
	}
	if err == nil {
		return fmt.Errorf("expected a %s error, got none", kind)
	}
	if !errors.Is(err, want) {
		return fmt.Errorf("expected a %s error, got: %w", kind, err)
	}
	return nil
}

func (ctx *GraphResolutionBDDTestContext) theBuildShouldFailWith(kind string) error {
	return expectErrorKind(ctx.buildErr, kind)
}

func (ctx *GraphResolutionBDDTestContext) theCyclePathShouldBe(expected string) error {
	var cycleErr *CyclicDependencyError
	if !errors.As(ctx.buildErr, &cycleErr) {
		return fmt.Errorf("expected CyclicDependencyError, got: %v", ctx.buildErr)
	}
	parts := make([]string, 0, len(cycleErr.Path)+len(cycleErr.ModulePath))
	for _, id := range cycleErr.Path {
		parts = append(parts, string(id))
	}
	parts = append(parts, cycleErr.ModulePath...)
	if got := strings.Join(parts, " -> "); got != expected {
		return fmt.Errorf("expected cycle path %q, got %q", expected, got)
	}
	return nil
}

func (ctx *GraphResolutionBDDTestContext) theErrorShouldMention(text string) error {
	if ctx.buildErr == nil || !strings.Contains(ctx.buildErr.Error(), text) {
		return fmt.Errorf("expected error mentioning %q, got: %v", text, ctx.buildErr)
	}
	return nil
}

func (ctx *GraphResolutionBDDTestContext) noProviderShouldHaveBeenConstructed() error {
	ctx.constructors.mu.Lock()
	defer ctx.constructors.mu.Unlock()
	if len(ctx.constructors.counts) != 0 {
		return fmt.Errorf("expected no constructions, got %v", ctx.constructors.counts)
	}
	return nil
}

func (ctx *GraphResolutionBDDTestContext) providerShouldBeConstructed(id string, times int) error {
	ctx.constructors.mu.Lock()
	defer ctx.constructors.mu.Unlock()
	if got := ctx.constructors.counts[id]; got != times {
		return fmt.Errorf("expected %q to be constructed %d times, got %d", id, times, got)
	}
	return nil
}

func (ctx *GraphResolutionBDDTestContext) theConstructionOrderShouldBe(module, expected string) error {
	c, ok := ctx.app.Module(module)
	if !ok {
		return fmt.Errorf("module %q was not built", module)
	}
	got := make([]string, 0, len(c.Order()))
	for _, id := range c.Order() {
		got = append(got, string(id))
	}
	if strings.Join(got, ", ") != expected {
		return fmt.Errorf("expected order %q, got %q", expected, strings.Join(got, ", "))
	}
	return nil
}

func (ctx *GraphResolutionBDDTestContext) exportedComponent(module, id string) (*component, error) {
	c, ok := ctx.app.Module(module)
	if !ok {
		return nil, fmt.Errorf("module %q was not built", module)
	}
	v, err := c.GetInstance(Identity(id))
	if err != nil {
		return nil, err
	}
	return v.(*component), nil
}

func (ctx *GraphResolutionBDDTestContext) providersShouldHoldTheSame(firstID, firstModule, secondID, secondModule, shared string) error {
	first, err := ctx.exportedComponent(firstModule, firstID)
	if err != nil {
		return err
	}
	second, err := ctx.exportedComponent(secondModule, secondID)
	if err != nil {
		return err
	}
	a, b := first.dep(0), second.dep(0)
	if a != b || a.id != Identity(shared) {
		return fmt.Errorf("expected %q and %q to hold the same %q", firstID, secondID, shared)
	}
	return nil
}

func (ctx *GraphResolutionBDDTestContext) providerShouldHoldTheExportOf(id, module, dep, depModule string) error {
	holder, err := ctx.exportedComponent(module, id)
	if err != nil {
		return err
	}
	exported, err := ctx.exportedComponent(depModule, dep)
	if err != nil {
		return err
	}
	if holder.dep(0) != exported {
		return fmt.Errorf("%q holds a different %q than module %q exports", id, dep, depModule)
	}
	return nil
}

func (ctx *GraphResolutionBDDTestContext) resolvingShouldFailWith(id, kind string) error {
	_, err := ctx.app.Resolve(Identity(id))
	return expectErrorKind(err, kind)
}

func (ctx *GraphResolutionBDDTestContext) resolvingTwiceShouldYield(id, kind string) error {
	first, err := ctx.app.Resolve(Identity(id))
	if err != nil {
		return err
	}
	second, err := ctx.app.Resolve(Identity(id))
	if err != nil {
		return err
	}
	same := first == second
	if kind == "the same" && !same {
		return fmt.Errorf("expected the same %q instance on every resolve", id)
	}
	if kind == "different" && same {
		return fmt.Errorf("expected a fresh %q instance on every resolve", id)
	}
	return nil
}

func TestGraphResolutionBDD(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			testContext := &GraphResolutionBDDTestContext{}
			testContext.reset()

			// Declaration
			ctx.Step(`^a module "([^"]*)" with providers:$`, testContext.aModuleWithProviders)
			ctx.Step(`^module "([^"]*)" imports "([^"]*)"$`, testContext.moduleImports)
			ctx.Step(`^module "([^"]*)" exports "([^"]*)"$`, testContext.moduleExports)
			ctx.Step(`^module "([^"]*)" is global$`, testContext.moduleIsGlobal)

			// Build
			ctx.Step(`^the application is built with root "([^"]*)"$`, testContext.theApplicationIsBuiltWithRoot)
			ctx.Step(`^the build should succeed$`, testContext.theBuildShouldSucceed)
			ctx.Step(`^the build should fail with an? ([a-z ]+) error$`, testContext.theBuildShouldFailWith)
			ctx.Step(`^the cycle path should be "([^"]*)"$`, testContext.theCyclePathShouldBe)
			ctx.Step(`^the error should mention "([^"]*)"$`, testContext.theErrorShouldMention)

			// Instances
			ctx.Step(`^no provider should have been constructed$`, testContext.noProviderShouldHaveBeenConstructed)
			ctx.Step(`^provider "([^"]*)" should be constructed (\d+) times?$`, testContext.providerShouldBeConstructed)
			ctx.Step(`^the construction order of "([^"]*)" should be "([^"]*)"$`, testContext.theConstructionOrderShouldBe)
			ctx.Step(`^"([^"]*)" from module "([^"]*)" and "([^"]*)" from module "([^"]*)" should hold the same "([^"]*)"$`, testContext.providersShouldHoldTheSame)
			ctx.Step(`^"([^"]*)" from module "([^"]*)" should hold the same "([^"]*)" as module "([^"]*)" exports$`, testContext.providerShouldHoldTheExportOf)
			ctx.Step(`^resolving "([^"]*)" should fail with an? ([a-z ]+) error$`, testContext.resolvingShouldFailWith)
			ctx.Step(`^resolving "([^"]*)" twice should yield (the same|different) instances$`, testContext.resolvingTwiceShouldYield)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/graph_resolution.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run BDD tests")
	}
}
