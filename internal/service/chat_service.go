package service

import (
	"context"
	"log"
	"time"

	"github.com/kisara115522/quickplan-ai/internal/domain"
	"github.com/kisara115522/quickplan-ai/internal/extract"
	"github.com/kisara115522/quickplan-ai/internal/llm"
	"github.com/kisara115522/quickplan-ai/internal/tools"
)

// Completer 文本补全服务，模型是黑盒，同步和流式两种调用方式
type Completer interface {
	Chat(ctx context.Context, messages []llm.Message) (string, error)
	ChatStream(ctx context.Context, messages []llm.Message, onChunk func(string)) (string, error)
}

// ChatMemory 会话级聊天记忆
type ChatMemory interface {
	Messages(ctx context.Context, conversationID string) ([]llm.Message, error)
	Append(ctx context.Context, conversationID string, msgs ...llm.Message) error
}

// MessageLog 消息持久化
type MessageLog interface {
	SaveUserMessage(ctx context.Context, conversationID, content string) (*domain.Message, error)
	SaveAssistantMessage(ctx context.Context, conversationID, content string) (*domain.Message, error)
}

// ConversationDirectory 会话查询与标题维护
type ConversationDirectory interface {
	GetConversationByID(ctx context.Context, id string) (*domain.Conversation, error)
	UpdateTitle(ctx context.Context, id, title string) (bool, error)
	TouchConversation(ctx context.Context, id string) error
}

// ChatService 串起一轮对话：
// 保存用户消息 → 组装记忆 → 调用模型 → 提取并执行工具调用 → 保存回复
type ChatService struct {
	completer     Completer
	mem           ChatMemory
	dispatcher    *tools.Dispatcher
	messages      MessageLog
	conversations ConversationDirectory
}

func NewChatService(completer Completer, mem ChatMemory, dispatcher *tools.Dispatcher, messages MessageLog, conversations ConversationDirectory) *ChatService {
	return &ChatService{
		completer:     completer,
		mem:           mem,
		dispatcher:    dispatcher,
		messages:      messages,
		conversations: conversations,
	}
}

type ChatParams struct {
	ConversationID string
	UserID         string
	Message        string
}

// Chat 非流式对话，返回最终回复（工具执行结果或模型原文）
func (s *ChatService) Chat(ctx context.Context, p ChatParams) (string, error) {
	msgs, err := s.prepare(ctx, p)
	if err != nil {
		return "", err
	}

	reply, err := s.completer.Chat(ctx, msgs)
	if err != nil {
		return "", err
	}

	final := s.resolveToolCall(ctx, reply, p.UserID)
	s.finish(ctx, p, final)
	return final, nil
}

// ChatStream 流式对话，模型分片原样回调 onChunk
// 分片在 Completer 内部累加成完整文本，本方法拿到完整回复后
// 只做一次工具调用解析；最终文本可能与流出的分片不同（工具执行结果替换原文）
func (s *ChatService) ChatStream(ctx context.Context, p ChatParams, onChunk func(string)) (string, error) {
	msgs, err := s.prepare(ctx, p)
	if err != nil {
		return "", err
	}

	reply, err := s.completer.ChatStream(ctx, msgs, onChunk)
	if err != nil {
		return "", err
	}

	final := s.resolveToolCall(ctx, reply, p.UserID)
	s.finish(ctx, p, final)
	return final, nil
}

// prepare 保存用户消息并组装发给模型的消息列表
func (s *ChatService) prepare(ctx context.Context, p ChatParams) ([]llm.Message, error) {
	if _, err := s.messages.SaveUserMessage(ctx, p.ConversationID, p.Message); err != nil {
		return nil, err
	}

	history, err := s.mem.Messages(ctx, p.ConversationID)
	if err != nil {
		// 记忆读不到不影响本轮对话，降级为无历史
		log.Printf("读取聊天记忆失败 (conversation=%s): %v", p.ConversationID, err)
		history = nil
	}

	currentDate := time.Now().Format("2006-01-02")
	msgs := make([]llm.Message, 0, len(history)+2)
	msgs = append(msgs, llm.Message{Role: "system", Content: llm.SystemPrompt(p.UserID, currentDate)})
	msgs = append(msgs, history...)
	msgs = append(msgs, llm.Message{Role: "user", Content: p.Message})
	return msgs, nil
}

// resolveToolCall 在模型回复里找工具调用并执行
// 未找到时原样返回回复；执行结果（成功或失败消息）替换原文
func (s *ChatService) resolveToolCall(ctx context.Context, reply, userID string) string {
	act := extract.ExtractToolCall(reply)
	if act.Name == extract.ActionNone {
		return reply
	}
	res := s.dispatcher.Dispatch(ctx, act, userID)
	if res.Message == "" {
		return reply
	}
	return res.Message
}

// finish 保存助手回复、更新记忆和会话标题
// 这些都是收尾动作，失败只记日志，不影响已经得到的回复
func (s *ChatService) finish(ctx context.Context, p ChatParams, final string) {
	if final == "" {
		return
	}
	if _, err := s.messages.SaveAssistantMessage(ctx, p.ConversationID, final); err != nil {
		log.Printf("保存助手消息失败 (conversation=%s): %v", p.ConversationID, err)
	}
	if err := s.mem.Append(ctx, p.ConversationID,
		llm.Message{Role: "user", Content: p.Message},
		llm.Message{Role: "assistant", Content: final},
	); err != nil {
		log.Printf("更新聊天记忆失败 (conversation=%s): %v", p.ConversationID, err)
	}
	s.autoTitle(ctx, p)
}

// autoTitle 新会话用首条消息的前 30 个字符作为标题
func (s *ChatService) autoTitle(ctx context.Context, p ChatParams) {
	c, err := s.conversations.GetConversationByID(ctx, p.ConversationID)
	if err != nil || c == nil {
		return
	}
	if c.Title != DefaultConversationTitle {
		if err := s.conversations.TouchConversation(ctx, p.ConversationID); err != nil {
			log.Printf("刷新会话时间失败 (conversation=%s): %v", p.ConversationID, err)
		}
		return
	}
	title := []rune(p.Message)
	if len(title) > 30 {
		title = append(title[:30], []rune("...")...)
	}
	if _, err := s.conversations.UpdateTitle(ctx, p.ConversationID, string(title)); err != nil {
		log.Printf("更新会话标题失败 (conversation=%s): %v", p.ConversationID, err)
	}
}
