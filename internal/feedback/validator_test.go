package feedback

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/hitoshi/feedback-board/internal/model"
)

// rawSubmissionFromJSON はJSON文字列からRawSubmissionを構築するテストヘルパー。
func rawSubmissionFromJSON(t *testing.T, body string) RawSubmission {
	t.Helper()
	var raw RawSubmission
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		t.Fatalf("failed to unmarshal test body: %v", err)
	}
	return raw
}

// validationErr はエラーをValidationErrorとして取り出すテストヘルパー。
func validationErr(t *testing.T, err error) *model.ValidationError {
	t.Helper()
	var vErr *model.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *model.ValidationError, got %T: %v", err, err)
	}
	return vErr
}

// 正常な投稿が正規化されて返ることを検証
func TestValidate_Success(t *testing.T) {
	raw := rawSubmissionFromJSON(t, `{"name":"John Doe","message":"Great product! This is a wonderful service.","rating":5}`)

	sub, err := Validate(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if sub.Name != "John Doe" {
		t.Errorf("Name = %q, want %q", sub.Name, "John Doe")
	}
	if sub.Message != "Great product! This is a wonderful service." {
		t.Errorf("Message = %q, want %q", sub.Message, "Great product! This is a wonderful service.")
	}
	if sub.Rating != 5 {
		t.Errorf("Rating = %d, want %d", sub.Rating, 5)
	}
}

// 前後の空白がトリムされることを検証
func TestValidate_TrimsWhitespace(t *testing.T) {
	raw := rawSubmissionFromJSON(t, `{"name":"  John Doe  ","message":"  hello world  ","rating":3}`)

	sub, err := Validate(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if sub.Name != "John Doe" {
		t.Errorf("Name = %q, want %q", sub.Name, "John Doe")
	}
	if sub.Message != "hello world" {
		t.Errorf("Message = %q, want %q", sub.Message, "hello world")
	}
}

// 欠落フィールドの組み合わせごとにMISSING_FIELDSと詳細が返ることを検証
func TestValidate_MissingFields(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		nameMissing    bool
		messageMissing bool
		ratingMissing  bool
	}{
		{"all absent", `{}`, true, true, true},
		{"name absent", `{"message":"hi","rating":3}`, true, false, false},
		{"message absent", `{"name":"a","rating":3}`, false, true, false},
		{"rating absent", `{"name":"a","message":"hi"}`, false, false, true},
		{"name and rating absent", `{"message":"hi"}`, true, false, true},
		{"empty name is falsy", `{"name":"","message":"hi","rating":3}`, true, false, false},
		{"null message is falsy", `{"name":"a","message":null,"rating":3}`, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rawSubmissionFromJSON(t, tt.body)

			_, err := Validate(raw)
			vErr := validationErr(t, err)

			if vErr.Code != model.ErrCodeMissingFields {
				t.Fatalf("Code = %q, want %q", vErr.Code, model.ErrCodeMissingFields)
			}

			if got := vErr.Details["name"] != nil; got != tt.nameMissing {
				t.Errorf("details.name present = %v, want %v", got, tt.nameMissing)
			}
			if got := vErr.Details["message"] != nil; got != tt.messageMissing {
				t.Errorf("details.message present = %v, want %v", got, tt.messageMissing)
			}
			if got := vErr.Details["rating"] != nil; got != tt.ratingMissing {
				t.Errorf("details.rating present = %v, want %v", got, tt.ratingMissing)
			}
		})
	}
}

// 存在したフィールドの詳細がJSONでnullになることを検証
func TestValidate_MissingFieldsDetailsMarshalNull(t *testing.T) {
	raw := rawSubmissionFromJSON(t, `{"message":"hi"}`)

	_, err := Validate(raw)
	vErr := validationErr(t, err)

	data, mErr := json.Marshal(vErr.Details)
	if mErr != nil {
		t.Fatalf("failed to marshal details: %v", mErr)
	}

	var decoded map[string]any
	if uErr := json.Unmarshal(data, &decoded); uErr != nil {
		t.Fatalf("failed to unmarshal details: %v", uErr)
	}

	if decoded["message"] != nil {
		t.Errorf("details.message = %v, want null", decoded["message"])
	}
	if decoded["name"] != "Name is required" {
		t.Errorf("details.name = %v, want %q", decoded["name"], "Name is required")
	}
	if decoded["rating"] != "Rating is required" {
		t.Errorf("details.rating = %v, want %q", decoded["rating"], "Rating is required")
	}
}

// 空白のみのnameは必須チェックを通過しINVALID_NAMEになることを検証
func TestValidate_WhitespaceOnlyName(t *testing.T) {
	raw := rawSubmissionFromJSON(t, `{"name":"   ","message":"hi","rating":3}`)

	_, err := Validate(raw)
	vErr := validationErr(t, err)

	if vErr.Code != model.ErrCodeInvalidName {
		t.Errorf("Code = %q, want %q", vErr.Code, model.ErrCodeInvalidName)
	}
}

// 文字列以外のnameがINVALID_NAMEになることを検証
func TestValidate_NonStringName(t *testing.T) {
	raw := rawSubmissionFromJSON(t, `{"name":123,"message":"hi","rating":3}`)

	_, err := Validate(raw)
	vErr := validationErr(t, err)

	if vErr.Code != model.ErrCodeInvalidName {
		t.Errorf("Code = %q, want %q", vErr.Code, model.ErrCodeInvalidName)
	}
}

// nameの長さ境界（255文字は許容、256文字は拒否）を検証
func TestValidate_NameLengthBoundary(t *testing.T) {
	ok := strings.Repeat("a", 255)
	raw := rawSubmissionFromJSON(t, `{"name":"`+ok+`","message":"hi","rating":3}`)

	sub, err := Validate(raw)
	if err != nil {
		t.Fatalf("255-char name should be accepted, got %v", err)
	}
	if sub.Name != ok {
		t.Error("255-char name should be returned unchanged")
	}

	tooLong := strings.Repeat("a", 256)
	raw = rawSubmissionFromJSON(t, `{"name":"`+tooLong+`","message":"hi","rating":3}`)

	_, err = Validate(raw)
	vErr := validationErr(t, err)
	if vErr.Code != model.ErrCodeNameTooLong {
		t.Errorf("Code = %q, want %q", vErr.Code, model.ErrCodeNameTooLong)
	}
}

// トリム後の長さで境界判定されることを検証
func TestValidate_NameLengthAfterTrim(t *testing.T) {
	// 空白を含めると256文字を超えるが、トリム後は255文字ちょうど
	padded := "  " + strings.Repeat("a", 255) + "  "
	raw := rawSubmissionFromJSON(t, `{"name":"`+padded+`","message":"hi","rating":3}`)

	if _, err := Validate(raw); err != nil {
		t.Fatalf("padded 255-char name should be accepted after trim, got %v", err)
	}
}

// 空白のみのmessageがINVALID_MESSAGEになることを検証
func TestValidate_WhitespaceOnlyMessage(t *testing.T) {
	raw := rawSubmissionFromJSON(t, `{"name":"a","message":"  \t ","rating":3}`)

	_, err := Validate(raw)
	vErr := validationErr(t, err)

	if vErr.Code != model.ErrCodeInvalidMessage {
		t.Errorf("Code = %q, want %q", vErr.Code, model.ErrCodeInvalidMessage)
	}
}

// messageの長さ境界（10,000文字は許容、10,001文字は拒否）を検証
func TestValidate_MessageLengthBoundary(t *testing.T) {
	ok := strings.Repeat("b", 10000)
	raw := rawSubmissionFromJSON(t, `{"name":"a","message":"`+ok+`","rating":3}`)

	if _, err := Validate(raw); err != nil {
		t.Fatalf("10000-char message should be accepted, got %v", err)
	}

	tooLong := strings.Repeat("b", 10001)
	raw = rawSubmissionFromJSON(t, `{"name":"a","message":"`+tooLong+`","rating":3}`)

	_, err := Validate(raw)
	vErr := validationErr(t, err)
	if vErr.Code != model.ErrCodeMessageTooLong {
		t.Errorf("Code = %q, want %q", vErr.Code, model.ErrCodeMessageTooLong)
	}
}

// 不正なratingがすべてINVALID_RATINGになることを検証
func TestValidate_InvalidRating(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"non-integer 3.5", `{"name":"a","message":"hi","rating":3.5}`},
		{"out of range 6", `{"name":"a","message":"hi","rating":6}`},
		{"out of range -1", `{"name":"a","message":"hi","rating":-1}`},
		{"numeric string", `{"name":"a","message":"hi","rating":"3"}`},
		{"non-numeric string", `{"name":"a","message":"hi","rating":"abc"}`},
		{"boolean", `{"name":"a","message":"hi","rating":true}`},
		{"null", `{"name":"a","message":"hi","rating":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rawSubmissionFromJSON(t, tt.body)

			_, err := Validate(raw)
			vErr := validationErr(t, err)

			if vErr.Code != model.ErrCodeInvalidRating {
				t.Errorf("Code = %q, want %q", vErr.Code, model.ErrCodeInvalidRating)
			}
		})
	}
}

// rating 0はfalsyだがratingの必須判定には影響しないこと
// （欠落扱いになるのはname/messageのみ）を検証
func TestValidate_ZeroRatingIsInvalidNotMissing(t *testing.T) {
	raw := rawSubmissionFromJSON(t, `{"name":"a","message":"hi","rating":0}`)

	_, err := Validate(raw)
	vErr := validationErr(t, err)

	if vErr.Code != model.ErrCodeInvalidRating {
		t.Errorf("Code = %q, want %q", vErr.Code, model.ErrCodeInvalidRating)
	}
}

// 許容される全評価値（1〜5）が受理されることを検証
func TestValidate_AllValidRatings(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		raw := rawSubmissionFromJSON(t, `{"name":"a","message":"hi","rating":`+strconv.Itoa(rating)+`}`)

		sub, err := Validate(raw)
		if err != nil {
			t.Fatalf("rating %d should be accepted, got %v", rating, err)
		}
		if sub.Rating != rating {
			t.Errorf("Rating = %d, want %d", sub.Rating, rating)
		}
	}
}

// 必須チェックがトリムより先に行われないこと
// （空白のみの値は必須チェックを通過する）を検証
func TestValidate_PresenceDoesNotTrimFirst(t *testing.T) {
	raw := rawSubmissionFromJSON(t, `{"name":" ","message":"hi","rating":3}`)

	_, err := Validate(raw)
	vErr := validationErr(t, err)

	// 空白1文字はtruthyなので必須チェックは通過し、ルール2で拒否される
	if vErr.Code != model.ErrCodeInvalidName {
		t.Errorf("Code = %q, want %q", vErr.Code, model.ErrCodeInvalidName)
	}
}
