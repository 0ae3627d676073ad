package extract

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ActionName 工具调用的动作名，取值为 AI 输出里的原始工具名
type ActionName string

const (
	ActionAddSchedule        ActionName = "addSchedule"
	ActionGetSchedulesByDate ActionName = "getSchedulesByDate"
	ActionDeleteSchedule     ActionName = "deleteSchedule"
	ActionNone               ActionName = ""
)

// Action 从模型回复中提取出的结构化动作
// Name 为 ActionNone 时 Args 必为空，调用方直接原样返回模型回复
type Action struct {
	Name ActionName
	Args map[string]string
}

// None 未提取到任何动作
func None() Action {
	return Action{Name: ActionNone, Args: map[string]string{}}
}

// 提取层级，从严到宽依次尝试，先中者胜
// 模型经常把工具调用混在普通文字里输出，甚至丢掉外层大括号，
// 所以需要逐级放宽的模式来兜住各种格式漂移
type tier struct {
	re   *regexp.Regexp
	wrap bool // 匹配结果缺外层大括号，需要补上
}

var toolCallTiers = []tier{
	// 层级1: 标准的 {"name": ..., "arguments": {...}}
	{re: regexp.MustCompile(`(?s)\{.*?"name".*?"arguments".*?\}\s*\}`)},
	// 层级2: 缺外层大括号，只有 "name": "xxx", "arguments": {...}
	{re: regexp.MustCompile(`(?s)"name"\s*:\s*"(\w+)".*?"arguments"\s*:\s*\{.*?\}`), wrap: true},
	// 层级3: 最宽松，任何带 name 和嵌套对象的块
	{re: regexp.MustCompile(`(?s)\{[^}]*"name"[^}]*\{[^}]*\}[^}]*\}`)},
}

var wireNames = []string{
	string(ActionAddSchedule),
	string(ActionGetSchedulesByDate),
	string(ActionDeleteSchedule),
}

// ExtractToolCall 在模型的自由文本回复中寻找嵌入的工具调用
// 只有回复同时包含大括号和已知工具名时才尝试提取；
// 提取出的片段先经 jsonrepair 修复再解析，任何失败都返回 None 而不报错
func ExtractToolCall(reply string) Action {
	if !strings.Contains(reply, "{") || !strings.Contains(reply, "}") {
		return None()
	}
	if !containsWireName(reply) {
		return None()
	}

	var fragment string
	for _, t := range toolCallTiers {
		if m := t.re.FindString(reply); m != "" {
			fragment = m
			if t.wrap {
				fragment = "{" + fragment + "}"
			}
			break
		}
	}
	if fragment == "" {
		return None()
	}

	repaired, err := jsonrepair.JSONRepair(fragment)
	if err != nil {
		return None()
	}

	var call struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal([]byte(repaired), &call); err != nil {
		return None()
	}

	name := ActionName(call.Name)
	switch name {
	case ActionAddSchedule, ActionGetSchedulesByDate, ActionDeleteSchedule:
	default:
		return None()
	}

	args := make(map[string]string, len(call.Arguments))
	for k, v := range call.Arguments {
		switch vv := v.(type) {
		case string:
			args[k] = vv
		case float64:
			args[k] = strconv.FormatFloat(vv, 'f', -1, 64)
		case bool:
			args[k] = strconv.FormatBool(vv)
		case nil:
			// 跳过 null 参数，交给下游按缺省处理
		default:
			b, _ := json.Marshal(vv)
			args[k] = string(b)
		}
	}
	return Action{Name: name, Args: args}
}

func containsWireName(reply string) bool {
	for _, n := range wireNames {
		if strings.Contains(reply, n) {
			return true
		}
	}
	return false
}
