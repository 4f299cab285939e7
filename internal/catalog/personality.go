package catalog

// Code is a personality code of the six-letter RIASEC system.
type Code string

const (
	Realistic     Code = "R"
	Investigative Code = "I"
	Artistic      Code = "A"
	Social        Code = "S"
	Enterprising  Code = "E"
	Conventional  Code = "C"
)

// Codes lists every personality code in canonical order. Ties between equal
// counts are always resolved in this order.
var Codes = []Code{Realistic, Investigative, Artistic, Social, Enterprising, Conventional}

// Question identifiers of the personality part of the survey.
const (
	QuestionHobbies     = "cau2"
	QuestionEnvironment = "cau3"
	QuestionProblem     = "cau4"
)

// Answer is a selectable survey answer and the code it counts towards.
type Answer struct {
	Text string
	Code Code
}

// Question is a personality question. Multi questions accept several answers.
type Question struct {
	ID      string
	Prompt  string
	Multi   bool
	Answers []Answer
}

// Questions is the personality question bank in survey order.
var Questions = []Question{
	{
		ID:     QuestionHobbies,
		Prompt: "Vào thời gian rảnh, bạn thích làm những việc gì?",
		Multi:  true,
		Answers: []Answer{
			{Text: "Sửa chữa đồ đạc, lắp ráp mô hình, làm vườn.", Code: Realistic},
			{Text: "Đọc sách khoa học, xem phim tài liệu, tìm hiểu cách mọi thứ hoạt động.", Code: Investigative},
			{Text: "Vẽ, hát, viết truyện hoặc chơi một loại nhạc cụ.", Code: Artistic},
			{Text: "Tham gia hoạt động tình nguyện, trò chuyện, giúp đỡ bạn bè.", Code: Social},
			{Text: "Lên kế hoạch kinh doanh nhỏ, tổ chức một sự kiện cho lớp.", Code: Enterprising},
			{Text: "Sắp xếp lại góc học tập, tạo một bảng kế hoạch chi tiết.", Code: Conventional},
		},
	},
	{
		ID:     QuestionEnvironment,
		Prompt: "Bạn mong muốn được làm việc trong môi trường như thế nào?",
		Multi:  true,
		Answers: []Answer{
			{Text: "Ngoài trời, trong xưởng, nơi có thể dùng tay và công cụ.", Code: Realistic},
			{Text: "Trong phòng thí nghiệm, thư viện, nơi có thể tập trung nghiên cứu.", Code: Investigative},
			{Text: "Một không gian sáng tạo, linh hoạt, không gò bó.", Code: Artistic},
			{Text: "Nơi có nhiều người, có thể hợp tác và hỗ trợ lẫn nhau.", Code: Social},
			{Text: "Môi trường năng động, có cơ hội thể hiện khả năng lãnh đạo.", Code: Enterprising},
			{Text: "Văn phòng có trật tự, quy trình làm việc rõ ràng, ổn định.", Code: Conventional},
		},
	},
	{
		ID:     QuestionProblem,
		Prompt: "Khi gặp một vấn đề khó, bạn thường làm gì?",
		Answers: []Answer{
			{Text: "Bắt tay vào làm thử ngay để xem kết quả.", Code: Realistic},
			{Text: "Phân tích kỹ lưỡng các dữ liệu và thông tin.", Code: Investigative},
			{Text: "Tìm một giải pháp mới lạ, độc đáo không giống ai.", Code: Artistic},
			{Text: "Thảo luận với mọi người để tìm hướng giải quyết chung.", Code: Social},
			{Text: "Thuyết phục người khác làm theo phương án của mình.", Code: Enterprising},
			{Text: "Làm theo các bước đã được hướng dẫn một cách cẩn thận.", Code: Conventional},
		},
	},
}

var answerCodes = buildAnswerCodes(Questions)

func buildAnswerCodes(questions []Question) map[string]map[string]Code {
	out := make(map[string]map[string]Code, len(questions))
	for _, q := range questions {
		answers := make(map[string]Code, len(q.Answers))
		for _, a := range q.Answers {
			answers[a.Text] = a.Code
		}
		out[q.ID] = answers
	}
	return out
}

// AnswerCode returns the personality code of an answer to the given question.
// Unknown questions and unknown answer texts report false.
func AnswerCode(questionID, answer string) (Code, bool) {
	code, ok := answerCodes[questionID][answer]
	return code, ok
}

// CareerLabels are the career interests offered by the survey.
var CareerLabels = []string{
	"Kỹ thuật - Công nghệ",
	"Công nghệ thông tin",
	"Y - Dược - Sinh học",
	"Kinh tế - Quản trị - Marketing",
	"Khoa học Xã hội",
	"Sư phạm",
	"Luật sư, Nhà báo, Chuyên gia tâm lý",
	"Nghệ thuật - Thiết kế",
}
