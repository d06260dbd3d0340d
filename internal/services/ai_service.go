package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"mgaBack/internal/models"
	"mgaBack/internal/repositories"
)

const (
	descriptionPlaceholder = "Mô tả chi tiết đang được cập nhật..."
	descriptionFallback    = "Không thể tạo mô tả tự động. Vui lòng thử lại."
	queryACKFallback       = "Mèo đã nhận được yêu cầu của bạn!"
)

// AIService wraps the generative-text boundary with the marketplace prompts:
// listing descriptions, agent analysis, feng-shui and investment advice, and
// the natural-language search query translator.
type AIService struct {
	Client       TextGenerationClient
	PropertyRepo *repositories.PropertyRepository
	Timeout      time.Duration
}

func NewAIService(client TextGenerationClient, propertyRepo *repositories.PropertyRepository) *AIService {
	return &AIService{
		Client:       client,
		PropertyRepo: propertyRepo,
		Timeout:      25 * time.Second,
	}
}

func (s *AIService) Configured() bool {
	if s == nil || s.Client == nil {
		return false
	}
	if c, ok := s.Client.(*GeminiClient); ok {
		return c.Configured()
	}
	return true
}

func formatVND(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func describePrompt(p models.Property) string {
	var b strings.Builder
	b.WriteString("Bạn là Mèo AI, trợ lý bất động sản thông minh của Appmap365, một chuyên gia viết quảng cáo bất động sản hàng đầu tại Việt Nam. Hãy viết một mô tả hấp dẫn, chuyên nghiệp và đầy đủ cho một bất động sản tại Thái Nguyên với các thông tin sau:\n")
	fmt.Fprintf(&b, "- Tiêu đề: %s\n", p.Title)
	fmt.Fprintf(&b, "- Địa chỉ: %s\n", p.Address)
	fmt.Fprintf(&b, "- Loại hình: %s\n", p.Type)
	fmt.Fprintf(&b, "- Mục đích: %s\n", p.ListingType)
	if p.ListingType == models.ListingTypeSale {
		fmt.Fprintf(&b, "- Giá: %s VNĐ\n", formatVND(p.Price))
	} else {
		fmt.Fprintf(&b, "- Giá: %s VNĐ/tháng\n", formatVND(p.RentPrice))
	}
	fmt.Fprintf(&b, "- Diện tích: %v m²\n", p.Area)
	if p.Type != models.PropertyTypeLand {
		fmt.Fprintf(&b, "- Số phòng ngủ: %d\n", p.Bedrooms)
		fmt.Fprintf(&b, "- Số phòng tắm: %d\n", p.Bathrooms)
	}
	if p.TransactionDetails.YearBuilt > 0 {
		fmt.Fprintf(&b, "- Năm xây dựng: %d\n", p.TransactionDetails.YearBuilt)
	}
	fmt.Fprintf(&b, "- Pháp lý: %s\n\n", p.TransactionDetails.LegalStatus)
	b.WriteString("Hãy viết một đoạn văn mô tả liền mạch (không dùng gạch đầu dòng), tập trung vào các điểm mạnh như vị trí, tiện ích, tiềm năng đầu tư, và không gian sống. Sử dụng ngôn ngữ lôi cuốn, chuyên nghiệp, phù hợp với người mua/thuê nhà tại Việt Nam. Kết thúc bằng một lời kêu gọi hành động mạnh mẽ.")
	return b.String()
}

// GenerateDescription writes a marketing description for one listing and
// stores it on the property.
func (s *AIService) GenerateDescription(ctx context.Context, propertyID int) (string, error) {
	if !s.Configured() {
		return "", models.ErrAINotConfigured
	}
	p, err := s.PropertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resp, err := s.Client.Generate(ctx, GenerateRequest{Prompt: describePrompt(p)})
	if err != nil {
		return "", fmt.Errorf("generate description: %w", err)
	}
	description := strings.TrimSpace(resp.Text)
	if description == "" {
		description = descriptionFallback
	}
	if err := s.PropertyRepo.UpdateDescription(ctx, propertyID, description); err != nil {
		return "", err
	}
	return description, nil
}

// GenerateAllDescriptions fills in descriptions for every listing that lacks
// one. Failures are logged per listing and do not abort the batch.
func (s *AIService) GenerateAllDescriptions(ctx context.Context) int {
	if !s.Configured() {
		return 0
	}
	generated := 0
	for _, p := range s.PropertyRepo.GetAll(ctx) {
		if d := p.TransactionDetails.Description; d != "" && d != descriptionPlaceholder {
			continue
		}
		if _, err := s.GenerateDescription(ctx, p.ID); err != nil {
			log.Printf("generate description for property %d: %v", p.ID, err)
			continue
		}
		generated++
	}
	return generated
}

func analysisPrompt(p models.Property) string {
	var b strings.Builder
	b.WriteString("Bạn là Mèo AI, trợ lý bất động sản thông minh của Appmap365, một chuyên gia phân tích bất động sản kỳ cựu. Hãy thực hiện một phân tích chuyên sâu cho bất động sản sau đây để tư vấn cho một môi giới khác. Cung cấp câu trả lời dưới dạng JSON.\n\n")
	b.WriteString("Thông tin BĐS:\n")
	fmt.Fprintf(&b, "- Tiêu đề: %s\n", p.Title)
	fmt.Fprintf(&b, "- Địa chỉ: %s\n", p.Address)
	fmt.Fprintf(&b, "- Loại hình: %s\n", p.Type)
	fmt.Fprintf(&b, "- Mục đích: %s\n", p.ListingType)
	if p.ListingType == models.ListingTypeSale {
		fmt.Fprintf(&b, "- Giá: %s VNĐ\n", formatVND(p.Price))
	} else {
		fmt.Fprintf(&b, "- Giá: %s VNĐ/tháng\n", formatVND(p.RentPrice))
	}
	fmt.Fprintf(&b, "- Diện tích: %v m²\n", p.Area)
	if p.Type != models.PropertyTypeLand {
		fmt.Fprintf(&b, "- Số phòng ngủ: %d\n", p.Bedrooms)
		fmt.Fprintf(&b, "- Số phòng tắm: %d\n", p.Bathrooms)
	}
	fmt.Fprintf(&b, "- Pháp lý: %s\n\n", p.TransactionDetails.LegalStatus)
	b.WriteString("Yêu cầu phân tích:\n")
	b.WriteString("1. Điểm mạnh (strengths): Nêu 3-4 điểm mạnh cốt lõi (vị trí, giá, pháp lý, tiềm năng tăng giá...).\n")
	b.WriteString("2. Điểm yếu (weaknesses): Nêu 1-2 điểm yếu hoặc rủi ro tiềm ẩn (ngõ hẹp, quy hoạch treo gần đó, giá cao hơn thị trường...).\n")
	b.WriteString("3. Tiềm năng (potential): Phân tích tiềm năng phát triển trong tương lai (ăn theo dự án lớn nào, hạ tầng sắp mở rộng...).\n")
	b.WriteString("4. Đối tượng phù hợp (suitableFor): Gợi ý đối tượng khách hàng phù hợp nhất (gia đình trẻ, nhà đầu tư lướt sóng, cho thuê dòng tiền...).\n\n")
	b.WriteString("Hãy trả về kết quả chỉ dưới dạng một object JSON với các key: \"strengths\", \"weaknesses\", \"potential\", \"suitableFor\".")
	return b.String()
}

// GenerateAgentAnalysis produces the broker-facing strengths/weaknesses view
// of a listing.
func (s *AIService) GenerateAgentAnalysis(ctx context.Context, propertyID int) (models.AgentAnalysis, error) {
	if !s.Configured() {
		return models.AgentAnalysis{}, models.ErrAINotConfigured
	}
	p, err := s.PropertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return models.AgentAnalysis{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resp, err := s.Client.Generate(ctx, GenerateRequest{Prompt: analysisPrompt(p), JSON: true})
	if err != nil {
		return models.AgentAnalysis{}, fmt.Errorf("generate analysis: %w", err)
	}

	var analysis models.AgentAnalysis
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Text)), &analysis); err != nil {
		return models.AgentAnalysis{}, fmt.Errorf("parse analysis: %w", err)
	}
	return analysis, nil
}

// GenerateFengShuiAnalysis consults the model about the match between a birth
// year and a house orientation. The answer shape is model-defined JSON.
func (s *AIService) GenerateFengShuiAnalysis(ctx context.Context, birthYear int, direction string) (map[string]interface{}, error) {
	if !s.Configured() {
		return nil, models.ErrAINotConfigured
	}
	prompt := fmt.Sprintf("Bạn là chuyên gia phong thủy. Phân tích sự hợp và khắc của một người sinh năm %d với một ngôi nhà hướng %s tại Việt Nam. Cung cấp câu trả lời dưới dạng JSON với các key: \"mệnh\" (ngũ hành), \"hướngTốt\", \"hướngXấu\", \"màuSắcHợp\", \"lờiKhuyên\" (đưa ra một lời khuyên ngắn gọn về cách hóa giải hoặc tận dụng).", birthYear, direction)

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resp, err := s.Client.Generate(ctx, GenerateRequest{Prompt: prompt, JSON: true})
	if err != nil {
		return nil, fmt.Errorf("generate feng shui analysis: %w", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Text)), &out); err != nil {
		return nil, fmt.Errorf("parse feng shui analysis: %w", err)
	}
	return out, nil
}

// GenerateInvestmentAdvice asks for a strategy given budget, goal and risk
// appetite.
func (s *AIService) GenerateInvestmentAdvice(ctx context.Context, budget float64, goal, risk string) (map[string]interface{}, error) {
	if !s.Configured() {
		return nil, models.ErrAINotConfigured
	}
	prompt := fmt.Sprintf("Bạn là chuyên gia tư vấn đầu tư BĐS tại Thái Nguyên, Việt Nam. Với ngân sách %s VNĐ, mục tiêu \"%s\", và mức độ chấp nhận rủi ro \"%s\", hãy đưa ra một chiến lược đầu tư. Cung cấp câu trả lời dưới dạng JSON với các key: \"loạiHìnhPhùHợp\" (ví dụ: đất nền, chung cư, nhà phố), \"khuVựcTiềmNăng\" (gợi ý 2-3 khu vực cụ thể tại Thái Nguyên), \"chiếnLược\" (mô tả ngắn gọn chiến lược, ví dụ: mua và chờ tăng giá, mua để cho thuê...), và \"lưuý\" (một cảnh báo hoặc lưu ý quan trọng).", formatVND(budget), goal, risk)

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resp, err := s.Client.Generate(ctx, GenerateRequest{Prompt: prompt, JSON: true})
	if err != nil {
		return nil, fmt.Errorf("generate investment advice: %w", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Text)), &out); err != nil {
		return nil, fmt.Errorf("parse investment advice: %w", err)
	}
	return out, nil
}

func queryPrompt(query string) string {
	return fmt.Sprintf(`Bạn là Mèo AI, trợ lý tìm kiếm BĐS thông minh. Dựa vào yêu cầu của người dùng, hãy trích xuất các tiêu chí tìm kiếm và trả về một object JSON.
Yêu cầu người dùng: "%s"

Các tiêu chí có thể trích xuất:
- "location": Địa điểm cụ thể (VD: "Phan Đình Phùng", "Đại Từ", "trung tâm thành phố").
- "type": Loại hình ("Nhà", "Đất", "Căn hộ").
- "listingType": Mục đích ("Bán", "Cho Thuê").
- "minPrice": Giá tối thiểu (dưới dạng số, đơn vị VNĐ).
- "maxPrice": Giá tối đa (dưới dạng số, đơn vị VNĐ).
- "minRentPrice": Giá tối thiểu cho thuê (dưới dạng số, đơn vị VNĐ).
- "maxRentPrice": Giá tối đa cho thuê (dưới dạng số, đơn vị VNĐ).
- "minArea": Diện tích tối thiểu (dưới dạng số, đơn vị m2).
- "maxArea": Diện tích tối đa (dưới dạng số, đơn vị m2).
- "bedrooms": Số phòng ngủ (dưới dạng số).
- "responseMessage": Một câu trả lời thân thiện cho người dùng, xác nhận đã hiểu yêu cầu.

Hãy chỉ trả về object JSON, không có giải thích hay định dạng markdown. Nếu không trích xuất được thông tin nào, hãy bỏ qua key đó. Luôn luôn có "responseMessage".`, query)
}

func queryResponseSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "OBJECT",
		"properties": map[string]interface{}{
			"location":        map[string]interface{}{"type": "STRING", "nullable": true},
			"type":            map[string]interface{}{"type": "STRING", "nullable": true},
			"listingType":     map[string]interface{}{"type": "STRING", "nullable": true},
			"minPrice":        map[string]interface{}{"type": "NUMBER", "nullable": true},
			"maxPrice":        map[string]interface{}{"type": "NUMBER", "nullable": true},
			"minRentPrice":    map[string]interface{}{"type": "NUMBER", "nullable": true},
			"maxRentPrice":    map[string]interface{}{"type": "NUMBER", "nullable": true},
			"minArea":         map[string]interface{}{"type": "NUMBER", "nullable": true},
			"maxArea":         map[string]interface{}{"type": "NUMBER", "nullable": true},
			"bedrooms":        map[string]interface{}{"type": "INTEGER", "nullable": true},
			"responseMessage": map[string]interface{}{"type": "STRING"},
		},
		"required": []string{"responseMessage"},
	}
}

// FindPropertiesFromQuery translates a free-text search into partial filter
// criteria. A failed call or malformed JSON surfaces ErrQueryNotUnderstood
// instead of a silent no-op.
func (s *AIService) FindPropertiesFromQuery(ctx context.Context, query string) (models.QueryFilters, error) {
	if !s.Configured() {
		return models.QueryFilters{}, models.ErrAINotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resp, err := s.Client.Generate(ctx, GenerateRequest{
		Prompt: queryPrompt(query),
		JSON:   true,
		Schema: queryResponseSchema(),
	})
	if err != nil {
		log.Printf("query translation: %v", err)
		return models.QueryFilters{}, models.ErrQueryNotUnderstood
	}

	var filters models.QueryFilters
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Text)), &filters); err != nil {
		log.Printf("query translation: parse response: %v", err)
		return models.QueryFilters{}, models.ErrQueryNotUnderstood
	}
	if filters.ResponseMessage == "" {
		filters.ResponseMessage = queryACKFallback
	}
	return filters, nil
}

// ApplyQueryFilters shallow-merges the extracted fields into the active
// criteria. Absent fields leave the user's filter values untouched; the
// location, when present, lands in the keyword so the substring match picks
// it up.
func ApplyQueryFilters(current models.FilterCriteria, extracted models.QueryFilters) models.FilterCriteria {
	merged := current
	if extracted.Type != nil {
		merged.Type = *extracted.Type
	}
	if extracted.ListingType != nil {
		merged.ListingType = *extracted.ListingType
	}
	if extracted.MinPrice != nil {
		merged.MinPrice = formatVND(*extracted.MinPrice)
	}
	if extracted.MaxPrice != nil {
		merged.MaxPrice = formatVND(*extracted.MaxPrice)
	}
	if extracted.MinRentPrice != nil {
		merged.MinRentPrice = formatVND(*extracted.MinRentPrice)
	}
	if extracted.MaxRentPrice != nil {
		merged.MaxRentPrice = formatVND(*extracted.MaxRentPrice)
	}
	if extracted.MinArea != nil {
		merged.MinArea = extracted.MinArea
	}
	if extracted.MaxArea != nil {
		merged.MaxArea = extracted.MaxArea
	}
	if extracted.Bedrooms != nil {
		merged.Bedrooms = *extracted.Bedrooms
	}
	if extracted.Location != nil && *extracted.Location != "" {
		merged.Keyword = *extracted.Location
	}
	return merged
}
