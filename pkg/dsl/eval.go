package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/gs-imak/book-swipe-sub000/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("book", cel.DynType),
		cel.Variable("score", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是书目规则表达式的解释器，使用 CEL (Common Expression Language)
// 实现。用于配置驱动的书架规则（例如"只看高分奇幻"）。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：book.rating >= 4.0 / book.pages < 300
//   - 包含："Fantasy" in book.genres / "cozy" in book.moods
//   - 逻辑：book.rating >= 4.0 && "Fantasy" in book.genres
//   - 打分结果：score.final > 0.3
//
// 注意：has(book.key) 可以用 book.key != null 替代
type Eval struct {
	scored *core.ScoredBook
	rctx   *core.RecommendContext
	env    *cel.Env
}

// NewEval 创建一个新的表达式解释器。
func NewEval(scored *core.ScoredBook, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		scored: scored,
		rctx:   rctx,
		env:    env,
	}
}

// Evaluate 解析并执行表达式，返回布尔结果。空表达式视为恒真。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("cel env not initialized")
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		// 访问不存在的 key 时 CEL 会返回错误；
		// 应使用 book.key != null 检查存在性，而不是直接访问
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]interface{} {
	book := map[string]interface{}{}
	scoreMap := map[string]interface{}{"raw": 0.0, "final": 0.0}

	if e.scored != nil {
		scoreMap["raw"] = e.scored.Score
		scoreMap["final"] = e.scored.FinalScore
		if b := e.scored.Book; b != nil {
			book = map[string]interface{}{
				"id":         b.ID,
				"title":      b.Title,
				"author":     b.Author,
				"genres":     toAnySlice(b.GenreList()),
				"moods":      toAnySlice(b.MoodList()),
				"rating":     b.Rating,
				"pages":      b.Pages,
				"readinglog": b.Readinglog(),
			}
		}
	}

	rctx := map[string]interface{}{}
	if e.rctx != nil {
		rctx = map[string]interface{}{
			"community_boost": e.rctx.CommunityBoost,
			"liked_count":     len(e.rctx.LikedBooks),
			"params":          e.rctx.Params,
		}
	}

	return map[string]interface{}{
		"book":  book,
		"score": scoreMap,
		"rctx":  rctx,
	}
}

// toAnySlice 把 []string 转为 []interface{}，CEL 的 in 操作需要。
func toAnySlice(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
