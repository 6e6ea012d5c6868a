package filter

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/sankaku/models"
)

// DefaultCacheSize is the cache size of the package-level compiler
const DefaultCacheSize = 100

var defaultCompiler = NewCompiler(WithCache(DefaultCacheSize))

// Compile compiles an expression with the package-level caching compiler
func Compile(expression string) (*Filter, error) {
	return defaultCompiler.Compile(expression)
}

// Filter is a compiled boolean predicate over posts. It is safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
	funcs      map[string]any
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithFunctions adds custom helper functions
func WithFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.funcs, funcs)
	}
}

// Compiler turns expressions into filters
type Compiler struct {
	funcs map[string]any
	cache *lruCache
}

// NewCompiler creates a new expr-based filter compiler
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{funcs: make(map[string]any)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles an expression into a filter. Unknown identifiers are rejected.
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(environment(models.Post{}, c.funcs)),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &Filter{
		expression: expression,
		program:    program,
		funcs:      c.funcs,
	}

	if c.cache != nil {
		c.cache.Put(expression, f)
	}

	return f, nil
}

// Clear removes all cached filters
func (c *Compiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *Compiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Expression returns the original expression
func (f *Filter) Expression() string {
	return f.expression
}

// Eval evaluates the filter against a post
func (f *Filter) Eval(post models.Post) (bool, error) {
	result, err := expr.Run(f.program, environment(post, f.funcs))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			PostID:     post.ID,
			Err:        err,
		}
	}
	return result.(bool), nil
}

// Match reports whether the post satisfies the filter. Evaluation errors do not match.
func (f *Filter) Match(post models.Post) bool {
	ok, err := f.Eval(post)
	return err == nil && ok
}

// environment exposes a post and the helper functions to an expression
func environment(post models.Post, funcs map[string]any) map[string]any {
	env := make(map[string]any, 24+len(funcs))
	addHelperFunctions(env)

	tags := post.TagNames()
	env["hasTag"] = createHasTagFunc(tags)

	var duration float64
	if post.VideoDuration != nil {
		duration = *post.VideoDuration
	}

	env["ID"] = post.ID
	env["Rating"] = string(post.Rating)
	env["FileType"] = string(post.FileType())
	env["Extension"] = post.Extension()
	env["Width"] = post.Width
	env["Height"] = post.Height
	env["FavCount"] = post.FavCount
	env["VoteCount"] = post.VoteCount
	env["TotalScore"] = post.TotalScore
	env["CreatedAt"] = post.CreatedAt.Time
	env["Tags"] = tags
	env["Author"] = post.Author.Name
	env["VideoDuration"] = duration

	maps.Copy(env, funcs)
	return env
}

// addHelperFunctions adds the post-independent helpers
func addHelperFunctions(env map[string]any) {
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["now"] = time.Now
}

func createHasTagFunc(tags []string) func(string) bool {
	lowerTags := make([]string, len(tags))
	for i, tag := range tags {
		lowerTags[i] = strings.ToLower(tag)
	}
	return func(tag string) bool {
		return slices.Contains(lowerTags, strings.ToLower(tag))
	}
}
