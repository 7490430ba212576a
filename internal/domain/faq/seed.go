package faq

// SeedEntries is the built-in corpus used when no external source is
// configured. IDs are stable across rebuilds.
func SeedEntries() []Entry {
	return []Entry{
		{ID: 1, Question: "How do I reset my password?", Answer: "Go to settings and click 'Reset Password'.", Department: "Account"},
		{ID: 2, Question: "What are your support hours?", Answer: "We are available 24/7.", Department: "Support"},
		{ID: 3, Question: "How can I contact customer support?", Answer: "You can reach us via email at support@example.com or call our 24/7 hotline at +1-800-123-4567.", Department: "Support"},
		{ID: 4, Question: "How do I create an account?", Answer: "Click on 'Sign Up', fill in your details, verify your email, and you're good to go!", Department: "Account"},
		{ID: 5, Question: "How do I delete my account?", Answer: "Go to account settings, scroll down, and click 'Delete Account'. Be aware that this action is irreversible.", Department: "Account"},
		{ID: 6, Question: "Can I recover a deleted account?", Answer: "Unfortunately, once an account is deleted, it cannot be recovered. You will need to create a new one.", Department: "Account"},
		{ID: 7, Question: "Do you have a mobile app?", Answer: "Yes, we have both iOS and Android apps available on the App Store and Google Play.", Department: "General"},
		{ID: 8, Question: "What payment methods do you accept?", Answer: "We accept credit cards, PayPal, and bank transfers. Some regions may have additional local payment options.", Department: "Billing"},
		{ID: 9, Question: "How can I update my billing information?", Answer: "Go to the 'Billing' section in your account settings and update your payment details.", Department: "Billing"},
		{ID: 10, Question: "Is my personal information secure?", Answer: "Yes! We use industry-standard encryption and security measures to protect your data.", Department: "Security"},
		{ID: 11, Question: "How do I change my subscription plan?", Answer: "Navigate to 'Subscription' in settings and choose the plan that fits your needs. Your changes will take effect on the next billing cycle.", Department: "Billing"},
		{ID: 12, Question: "Can I get a refund?", Answer: "Refunds are available within 14 days of purchase. Contact support for assistance.", Department: "Billing"},
		{ID: 13, Question: "How do I enable two-factor authentication (2FA)?", Answer: "Go to 'Security Settings', select 'Enable 2FA', and follow the on-screen instructions to link your authenticator app.", Department: "Security"},
		{ID: 14, Question: "Why was my payment declined?", Answer: "There could be several reasons: insufficient funds, incorrect details, or bank restrictions. Try another payment method or contact your bank.", Department: "Billing"},
		{ID: 15, Question: "How do I report a bug?", Answer: "Submit a bug report through our support portal with a description and screenshots, if possible.", Department: "Support"},
		{ID: 16, Question: "What happens if I forget my username?", Answer: "You can use your registered email to log in or retrieve your username from the 'Forgot Username' section.", Department: "Account"},
		{ID: 17, Question: "How do I update my profile information?", Answer: "Go to your profile page, click 'Edit', update the necessary fields, and save changes.", Department: "Account"},
		{ID: 18, Question: "What should I do if I suspect unauthorized access to my account?", Answer: "Immediately change your password and enable two-factor authentication. If you still have concerns, contact support.", Department: "Security"},
		{ID: 19, Question: "How can I improve my account security?", Answer: "Use a strong password, enable 2FA, avoid sharing credentials, and regularly update your account details.", Department: "Security"},
		{ID: 20, Question: "Where can I find the terms and conditions?", Answer: "Our terms and conditions are available on our website under the 'Legal' section or at www.example.com/terms.", Department: "General"},
	}
}
